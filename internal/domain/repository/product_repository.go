package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"reviro_api/internal/common"
	"reviro_api/internal/domain/model"
)

// ProductRepository is company-scoped: every lookup and mutation matches on
// (company_id, id) so a product can never be reached through another company.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (int64, error)
	FindByID(ctx context.Context, companyID, productID int64) (*model.Product, error)
	ListByCompany(ctx context.Context, companyID int64, skip, limit int) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, companyID, productID int64) error
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `id, name, description, price, discount, quantity, company_id, created_at, updated_at`

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	query := `INSERT INTO products (name, description, price, discount, quantity, company_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Discount, p.Quantity, p.CompanyID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation, unknown company
			return 0, fmt.Errorf("company %d does not exist: %w", p.CompanyID, common.ErrNotFound)
		}
		return 0, fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return id, nil
}

func (r *pgProductRepository) FindByID(ctx context.Context, companyID, productID int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2`
	p := &model.Product{}
	err := r.db.QueryRowContext(ctx, query, companyID, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Quantity,
		&p.CompanyID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProductRepository) ListByCompany(ctx context.Context, companyID int64, skip, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE company_id = $1 ORDER BY id OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, companyID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByCompany: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Quantity,
			&p.CompanyID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgProductRepository.ListByCompany scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByCompany rows: %w", err)
	}
	return products, nil
}

func (r *pgProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET
	          name = $1, description = $2, price = $3, discount = $4, quantity = $5,
	          updated_at = CURRENT_TIMESTAMP
	          WHERE company_id = $6 AND id = $7`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Discount, p.Quantity, p.CompanyID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Update: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, companyID, productID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, productID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
