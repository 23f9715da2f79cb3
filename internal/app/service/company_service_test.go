package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
)

func TestCompanyService_CreateGeneratesSlug(t *testing.T) {
	t.Parallel()
	svc := NewCompanyService(newMemCompanyRepository())
	ctx := context.Background()

	company, err := svc.CreateCompany(ctx, CompanyRequest{
		Name:             "Reviro GmbH & Co",
		ScheduleStart:    "09:00",
		ScheduleEnd:      "18:00",
		ScheduleWeekdays: model.WeekdaysAll,
	})
	require.NoError(t, err)
	assert.Equal(t, "reviro-gmbh-and-co", company.Slug)
	assert.NotZero(t, company.ID)
}

func TestCompanyService_Validation(t *testing.T) {
	t.Parallel()
	svc := NewCompanyService(newMemCompanyRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		req  CompanyRequest
	}{
		{"empty name", CompanyRequest{Name: ""}},
		{"bad weekday", CompanyRequest{Name: "x", ScheduleWeekdays: "someday"}},
		{"bad start time", CompanyRequest{Name: "x", ScheduleStart: "9am"}},
		{"bad end time", CompanyRequest{Name: "x", ScheduleEnd: "25:61"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateCompany(ctx, tc.req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCompanyService_PatchKeepsUnsetFields(t *testing.T) {
	t.Parallel()
	svc := NewCompanyService(newMemCompanyRepository())
	ctx := context.Background()

	created, err := svc.CreateCompany(ctx, CompanyRequest{
		Name:        "Acme",
		Description: "original description",
		PhoneNumber: "+996555000111",
	})
	require.NoError(t, err)

	newName := "Acme Inc"
	patched, err := svc.PatchCompany(ctx, created.ID, UpdateCompanyRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", patched.Name)
	assert.Equal(t, "acme-inc", patched.Slug)
	assert.Equal(t, "original description", patched.Description)
	assert.Equal(t, "+996555000111", patched.PhoneNumber)
}

func TestCompanyService_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewCompanyService(newMemCompanyRepository())
	ctx := context.Background()

	_, err := svc.GetCompany(ctx, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.ReplaceCompany(ctx, 99, CompanyRequest{Name: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.DeleteCompany(ctx, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCompanyService_ListPagination(t *testing.T) {
	t.Parallel()
	svc := NewCompanyService(newMemCompanyRepository())
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := svc.CreateCompany(ctx, CompanyRequest{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.ListCompanies(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "two", page[0].Name)

	empty, err := svc.ListCompanies(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
