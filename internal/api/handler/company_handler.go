package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviro_api/internal/api/middleware"
	"reviro_api/internal/app/service"
	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
)

type CompanyHandler struct {
	companyService *service.CompanyService
	auth           *middleware.AuthMiddleware
}

func NewCompanyHandler(companyService *service.CompanyService, auth *middleware.AuthMiddleware) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, auth: auth}
}

func (h *CompanyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCompanies)
	r.Get("/{companyID}", h.getCompany)

	// Company writes are admin-only.
	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(h.auth.Authenticator)
		adminRouter.Use(h.auth.RequireRole(model.RoleAdmin))
		adminRouter.Post("/", h.createCompany)
		adminRouter.Put("/{companyID}", h.replaceCompany)
		adminRouter.Patch("/{companyID}", h.patchCompany)
		adminRouter.Delete("/{companyID}", h.deleteCompany)
	})
}

func (h *CompanyHandler) listCompanies(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	companies, err := h.companyService.ListCompanies(r.Context(), skip, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) createCompany(w http.ResponseWriter, r *http.Request) {
	var req service.CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	company, err := h.companyService.CreateCompany(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "companyID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid company id")
		return
	}
	company, err := h.companyService.GetCompany(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) replaceCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "companyID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid company id")
		return
	}
	var req service.CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	company, err := h.companyService.ReplaceCompany(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) patchCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "companyID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid company id")
		return
	}
	var req service.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	company, err := h.companyService.PatchCompany(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "companyID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid company id")
		return
	}
	company, err := h.companyService.DeleteCompany(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, company)
}
