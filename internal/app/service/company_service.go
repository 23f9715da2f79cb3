package service

import (
	"context"
	"time"

	"github.com/gosimple/slug"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
	"reviro_api/internal/domain/repository"
)

type CompanyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

type CompanyRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ScheduleStart    string `json:"schedule_start"`
	ScheduleEnd      string `json:"schedule_end"`
	ScheduleWeekdays string `json:"schedule_weekdays"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	MapLink          string `json:"map_link"`
	SocialMedia1     string `json:"social_media1"`
	SocialMedia2     string `json:"social_media2"`
	SocialMedia3     string `json:"social_media3"`
}

// UpdateCompanyRequest carries only the fields present in the payload; nil
// means "leave unchanged" (PATCH semantics).
type UpdateCompanyRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	ScheduleStart    *string `json:"schedule_start,omitempty"`
	ScheduleEnd      *string `json:"schedule_end,omitempty"`
	ScheduleWeekdays *string `json:"schedule_weekdays,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Email            *string `json:"email,omitempty"`
	MapLink          *string `json:"map_link,omitempty"`
	SocialMedia1     *string `json:"social_media1,omitempty"`
	SocialMedia2     *string `json:"social_media2,omitempty"`
	SocialMedia3     *string `json:"social_media3,omitempty"`
}

func (s *CompanyService) CreateCompany(ctx context.Context, req CompanyRequest) (*model.Company, error) {
	if err := validateCompany(req.Name, req.ScheduleStart, req.ScheduleEnd, req.ScheduleWeekdays); err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		Description:      req.Description,
		ScheduleStart:    req.ScheduleStart,
		ScheduleEnd:      req.ScheduleEnd,
		ScheduleWeekdays: req.ScheduleWeekdays,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		MapLink:          req.MapLink,
		SocialMedia1:     req.SocialMedia1,
		SocialMedia2:     req.SocialMedia2,
		SocialMedia3:     req.SocialMedia3,
	}

	id, err := s.companyRepo.Create(ctx, company)
	if err != nil {
		return nil, err
	}
	company.ID = id
	return company, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	return s.companyRepo.FindByID(ctx, id)
}

func (s *CompanyService) ListCompanies(ctx context.Context, skip, limit int) ([]model.Company, error) {
	return s.companyRepo.List(ctx, skip, limit)
}

// ReplaceCompany is PUT semantics: every field is overwritten from the request.
func (s *CompanyService) ReplaceCompany(ctx context.Context, id int64, req CompanyRequest) (*model.Company, error) {
	if err := validateCompany(req.Name, req.ScheduleStart, req.ScheduleEnd, req.ScheduleWeekdays); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	company := &model.Company{
		ID:               id,
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		Description:      req.Description,
		ScheduleStart:    req.ScheduleStart,
		ScheduleEnd:      req.ScheduleEnd,
		ScheduleWeekdays: req.ScheduleWeekdays,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		MapLink:          req.MapLink,
		SocialMedia1:     req.SocialMedia1,
		SocialMedia2:     req.SocialMedia2,
		SocialMedia3:     req.SocialMedia3,
	}
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// PatchCompany applies only the fields present in the request.
func (s *CompanyService) PatchCompany(ctx context.Context, id int64, req UpdateCompanyRequest) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
		company.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.ScheduleStart != nil {
		company.ScheduleStart = *req.ScheduleStart
	}
	if req.ScheduleEnd != nil {
		company.ScheduleEnd = *req.ScheduleEnd
	}
	if req.ScheduleWeekdays != nil {
		company.ScheduleWeekdays = *req.ScheduleWeekdays
	}
	if req.PhoneNumber != nil {
		company.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.MapLink != nil {
		company.MapLink = *req.MapLink
	}
	if req.SocialMedia1 != nil {
		company.SocialMedia1 = *req.SocialMedia1
	}
	if req.SocialMedia2 != nil {
		company.SocialMedia2 = *req.SocialMedia2
	}
	if req.SocialMedia3 != nil {
		company.SocialMedia3 = *req.SocialMedia3
	}

	if err := validateCompany(company.Name, company.ScheduleStart, company.ScheduleEnd, company.ScheduleWeekdays); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany removes the company and, through the FK cascade, its products.
// The deleted entity is returned so the handler can echo it.
func (s *CompanyService) DeleteCompany(ctx context.Context, id int64) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return company, nil
}

func validateCompany(name, scheduleStart, scheduleEnd, scheduleWeekdays string) error {
	if name == "" {
		return common.Errorf("company name must not be empty: %w", common.ErrValidation)
	}
	if !model.ValidWeekdays(scheduleWeekdays) {
		return common.Errorf("unknown schedule_weekdays %q: %w", scheduleWeekdays, common.ErrValidation)
	}
	for _, v := range []string{scheduleStart, scheduleEnd} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return common.Errorf("schedule time %q must be HH:MM: %w", v, common.ErrValidation)
		}
	}
	return nil
}
