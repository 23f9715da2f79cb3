package service

import (
	"context"
	"regexp"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
	"reviro_api/internal/domain/repository"
)

// Prices travel as decimal strings and go straight into a NUMERIC(10,2)
// column, so the shape is checked here rather than parsed into a float.
var pricePattern = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

type ProductService struct {
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
}

func NewProductService(productRepo repository.ProductRepository, companyRepo repository.CompanyRepository) *ProductService {
	return &ProductService{productRepo: productRepo, companyRepo: companyRepo}
}

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Discount    int    `json:"discount"`
	Quantity    int    `json:"quantity"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Discount    *int    `json:"discount,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
}

func (s *ProductService) CreateProduct(ctx context.Context, companyID int64, req ProductRequest) (*model.Product, error) {
	if err := validateProduct(req.Name, req.Price, req.Discount, req.Quantity); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	if req.Price == "" {
		req.Price = "0.00"
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Quantity:    req.Quantity,
		CompanyID:   companyID,
	}
	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, companyID, id)
}

func (s *ProductService) GetProduct(ctx context.Context, companyID, productID int64) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, companyID, productID)
}

func (s *ProductService) ListProducts(ctx context.Context, companyID int64, skip, limit int) ([]model.Product, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByCompany(ctx, companyID, skip, limit)
}

// ReplaceProduct is PUT semantics: every field is overwritten from the request.
func (s *ProductService) ReplaceProduct(ctx context.Context, companyID, productID int64, req ProductRequest) (*model.Product, error) {
	if err := validateProduct(req.Name, req.Price, req.Discount, req.Quantity); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if req.Price == "" {
		req.Price = "0.00"
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Discount = req.Discount
	product.Quantity = req.Quantity

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, companyID, productID)
}

// PatchProduct applies only the fields present in the request.
func (s *ProductService) PatchProduct(ctx context.Context, companyID, productID int64, req UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	if err := validateProduct(product.Name, product.Price, product.Discount, product.Quantity); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, companyID, productID)
}

func (s *ProductService) DeleteProduct(ctx context.Context, companyID, productID int64) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Delete(ctx, companyID, productID); err != nil {
		return nil, err
	}
	return product, nil
}

func validateProduct(name, price string, discount, quantity int) error {
	if name == "" {
		return common.Errorf("product name must not be empty: %w", common.ErrValidation)
	}
	if price != "" && !pricePattern.MatchString(price) {
		return common.Errorf("price %q must be a decimal with at most two fraction digits: %w", price, common.ErrValidation)
	}
	if discount < 0 || discount >= 100 {
		return common.Errorf("discount must be in [0, 100): %w", common.ErrValidation)
	}
	if quantity < 0 {
		return common.Errorf("quantity must not be negative: %w", common.ErrValidation)
	}
	return nil
}
