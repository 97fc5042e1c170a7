package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	Customizable bool            `json:"customizable"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewProductInput carries everything but the identifier and creation time,
// which the store assigns.
type NewProductInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	Customizable bool            `json:"customizable"`
}

func (in NewProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	if in.Price.IsNegative() {
		return ErrNegativePrice
	}
	if in.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// UpdateProductInput is a partial update: nil fields are left untouched.
type UpdateProductInput struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Images       *[]string        `json:"images,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Stock        *int             `json:"stock,omitempty"`
	Customizable *bool            `json:"customizable,omitempty"`
}

func (in UpdateProductInput) HasAnyField() bool {
	return in.Name != nil ||
		in.Description != nil ||
		in.Price != nil ||
		in.Images != nil ||
		in.Category != nil ||
		in.Stock != nil ||
		in.Customizable != nil
}

func (in UpdateProductInput) Validate() error {
	if !in.HasAnyField() {
		return ErrNoFieldsToUpdate
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ErrEmptyName
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		return ErrEmptyCategory
	}
	if in.Price != nil && in.Price.IsNegative() {
		return ErrNegativePrice
	}
	if in.Stock != nil && *in.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// AllCategories is the category label meaning "no category filter".
const AllCategories = "all"

type ListOptions struct {
	Category string
	Search   string
	Limit    int
}
