package entity

import "time"

// Category categoría del catálogo de productos.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Slug        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
