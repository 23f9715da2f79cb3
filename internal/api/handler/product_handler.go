package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviro_api/internal/api/middleware"
	"reviro_api/internal/app/service"
	"reviro_api/internal/common"
)

type ProductHandler struct {
	productService *service.ProductService
	auth           *middleware.AuthMiddleware
}

func NewProductHandler(productService *service.ProductService, auth *middleware.AuthMiddleware) *ProductHandler {
	return &ProductHandler{productService: productService, auth: auth}
}

// RegisterRoutes mounts under /companies/{companyID}/products. Reads are
// public; writes need any authenticated user.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/{productID}", h.getProduct)

	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.Authenticator)
		authed.Post("/", h.createProduct)
		authed.Put("/{productID}", h.replaceProduct)
		authed.Patch("/{productID}", h.patchProduct)
		authed.Delete("/{productID}", h.deleteProduct)
	})
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(r, "companyID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid company id")
		return
	}
	skip, limit := pagination(r)
	products, err := h.productService.ListProducts(r.Context(), companyID, skip, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(r, "companyID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid company id")
		return
	}
	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	product, err := h.productService.CreateProduct(r.Context(), companyID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	companyID, productID, ok := productPath(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	product, err := h.productService.GetProduct(r.Context(), companyID, productID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) replaceProduct(w http.ResponseWriter, r *http.Request) {
	companyID, productID, ok := productPath(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	product, err := h.productService.ReplaceProduct(r.Context(), companyID, productID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) patchProduct(w http.ResponseWriter, r *http.Request) {
	companyID, productID, ok := productPath(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var req service.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	product, err := h.productService.PatchProduct(r.Context(), companyID, productID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	companyID, productID, ok := productPath(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	product, err := h.productService.DeleteProduct(r.Context(), companyID, productID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, product)
}

func productPath(r *http.Request) (companyID, productID int64, ok bool) {
	companyID, ok = pathID(r, "companyID")
	if !ok {
		return 0, 0, false
	}
	productID, ok = pathID(r, "productID")
	if !ok {
		return 0, 0, false
	}
	return companyID, productID, true
}
