package model

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"` // NUMERIC(10,2), kept as its decimal string
	Discount    int       `json:"discount"`
	Quantity    int       `json:"quantity"`
	CompanyID   int64     `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
