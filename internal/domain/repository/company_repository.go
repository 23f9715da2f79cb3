package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Company, error)
	List(ctx context.Context, skip, limit int) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id int64) error
}

type pgCompanyRepository struct {
	db *sql.DB
}

func NewPgCompanyRepository(db *sql.DB) CompanyRepository {
	return &pgCompanyRepository{db: db}
}

const companyColumns = `id, name, slug, description, schedule_start, schedule_end,
	schedule_weekdays, phone_number, email, map_link, social_media1, social_media2, social_media3`

func (r *pgCompanyRepository) Create(ctx context.Context, c *model.Company) (int64, error) {
	query := `INSERT INTO companies
	          (name, slug, description, schedule_start, schedule_end, schedule_weekdays,
	           phone_number, email, map_link, social_media1, social_media2, social_media3)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Slug, c.Description, c.ScheduleStart, c.ScheduleEnd, c.ScheduleWeekdays,
		c.PhoneNumber, c.Email, c.MapLink, c.SocialMedia1, c.SocialMedia2, c.SocialMedia3,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("pgCompanyRepository.Create: %w", err)
	}
	return id, nil
}

func (r *pgCompanyRepository) FindByID(ctx context.Context, id int64) (*model.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c := &model.Company{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ScheduleStart, &c.ScheduleEnd,
		&c.ScheduleWeekdays, &c.PhoneNumber, &c.Email, &c.MapLink,
		&c.SocialMedia1, &c.SocialMedia2, &c.SocialMedia3,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCompanyRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *pgCompanyRepository) List(ctx context.Context, skip, limit int) ([]model.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("pgCompanyRepository.List: %w", err)
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.ScheduleStart, &c.ScheduleEnd,
			&c.ScheduleWeekdays, &c.PhoneNumber, &c.Email, &c.MapLink,
			&c.SocialMedia1, &c.SocialMedia2, &c.SocialMedia3,
		); err != nil {
			return nil, fmt.Errorf("pgCompanyRepository.List scan: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCompanyRepository.List rows: %w", err)
	}
	return companies, nil
}

func (r *pgCompanyRepository) Update(ctx context.Context, c *model.Company) error {
	query := `UPDATE companies SET
	          name = $1, slug = $2, description = $3, schedule_start = $4, schedule_end = $5,
	          schedule_weekdays = $6, phone_number = $7, email = $8, map_link = $9,
	          social_media1 = $10, social_media2 = $11, social_media3 = $12
	          WHERE id = $13`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Slug, c.Description, c.ScheduleStart, c.ScheduleEnd, c.ScheduleWeekdays,
		c.PhoneNumber, c.Email, c.MapLink, c.SocialMedia1, c.SocialMedia2, c.SocialMedia3, c.ID,
	)
	if err != nil {
		return fmt.Errorf("pgCompanyRepository.Update: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCompanyRepository) Delete(ctx context.Context, id int64) error {
	// ON DELETE CASCADE removes the company's products with it.
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCompanyRepository.Delete: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
