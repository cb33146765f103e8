package models

import (
	"time"
)

// Category - product grouping from the Northwind catalog
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:15;not null" json:"name"`
	Description string `json:"description"`
}

// Product - read-only here; the category reference is optional
type Product struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:40;not null;index" json:"name"`
	CategoryID      *uint     `json:"category_id"`
	Category        *Category `json:"category,omitempty"`
	QuantityPerUnit string    `gorm:"size:20" json:"quantity_per_unit"`
	UnitPrice       float64   `json:"unit_price"`
	UnitsInStock    int       `json:"units_in_stock"`
	Discontinued    bool      `json:"discontinued"`
}

// CategoryName returns the name of the linked category, or "" when there is none.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// Customer - Northwind uses a five-character code as the key
type Customer struct {
	ID           string `gorm:"primaryKey;size:5" json:"id"`
	CompanyName  string `gorm:"size:40;not null" json:"company_name"`
	ContactName  string `gorm:"size:30" json:"contact_name"`
	ContactTitle string `gorm:"size:30" json:"contact_title"`
	Address      string `gorm:"size:60" json:"address"`
	City         string `gorm:"size:15" json:"city"`
	Region       string `gorm:"size:15" json:"region"`
	PostalCode   string `gorm:"size:10" json:"postal_code"`
	Country      string `gorm:"size:15" json:"country"`
	Phone        string `gorm:"size:24" json:"phone"`
	Fax          string `gorm:"size:24" json:"fax"`
}

// User - an API account that can obtain a token
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	DisplayName  string    `gorm:"size:100" json:"display_name"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	CreatedAt    time.Time `json:"created_at"`
}
