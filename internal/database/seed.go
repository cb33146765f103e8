package database

import (
	"context"
	"fmt"

	"northwind-ai-api/internal/models"

	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

// sampleCategories, sampleProducts and sampleCustomers are a small slice of the Northwind data set.
var sampleCategories = []models.Category{
	{ID: 1, Name: "Beverages", Description: "Soft drinks, coffees, teas, beers, and ales"},
	{ID: 2, Name: "Condiments", Description: "Sweet and savory sauces, relishes, spreads, and seasonings"},
	{ID: 4, Name: "Dairy Products", Description: "Cheeses"},
	{ID: 5, Name: "Grains/Cereals", Description: "Breads, crackers, pasta, and cereal"},
	{ID: 6, Name: "Meat/Poultry", Description: "Prepared meats"},
	{ID: 7, Name: "Produce", Description: "Dried fruit and bean curd"},
	{ID: 8, Name: "Seafood", Description: "Seaweed and fish"},
}

var sampleProducts = []models.Product{
	{ID: 1, Name: "Chai", CategoryID: uintPtr(1), QuantityPerUnit: "10 boxes x 20 bags", UnitPrice: 18, UnitsInStock: 39},
	{ID: 4, Name: "Chef Anton's Cajun Seasoning", CategoryID: uintPtr(2), QuantityPerUnit: "48 - 6 oz jars", UnitPrice: 22, UnitsInStock: 53},
	{ID: 11, Name: "Queso Cabrales", CategoryID: uintPtr(4), QuantityPerUnit: "1 kg pkg.", UnitPrice: 21, UnitsInStock: 22},
	{ID: 14, Name: "Tofu", CategoryID: uintPtr(7), QuantityPerUnit: "40 - 100 g pkgs.", UnitPrice: 23.25, UnitsInStock: 35},
	{ID: 22, Name: "Gustaf's Knäckebröd", CategoryID: uintPtr(5), QuantityPerUnit: "24 - 500 g pkgs.", UnitPrice: 21, UnitsInStock: 104},
	{ID: 17, Name: "Alice Mutton", CategoryID: uintPtr(6), QuantityPerUnit: "20 - 1 kg tins", UnitPrice: 39, Discontinued: true},
	{ID: 40, Name: "Boston Crab Meat", CategoryID: uintPtr(8), QuantityPerUnit: "24 - 4 oz tins", UnitPrice: 18.4, UnitsInStock: 123},
	{ID: 77, Name: "Original Frankfurter grüne Soße", CategoryID: uintPtr(2), QuantityPerUnit: "12 boxes", UnitPrice: 13, UnitsInStock: 32},
}

var sampleCustomers = []models.Customer{
	{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: "Maria Anders", ContactTitle: "Sales Representative", Address: "Obere Str. 57", City: "Berlin", PostalCode: "12209", Country: "Germany", Phone: "030-0074321", Fax: "030-0076545"},
	{ID: "ANATR", CompanyName: "Ana Trujillo Emparedados y helados", ContactName: "Ana Trujillo", ContactTitle: "Owner", Address: "Avda. de la Constitución 2222", City: "México D.F.", PostalCode: "05021", Country: "Mexico", Phone: "(5) 555-4729", Fax: "(5) 555-3745"},
	{ID: "AROUT", CompanyName: "Around the Horn", ContactName: "Thomas Hardy", ContactTitle: "Sales Representative", Address: "120 Hanover Sq.", City: "London", PostalCode: "WA1 1DP", Country: "UK", Phone: "(171) 555-7788", Fax: "(171) 555-6750"},
	{ID: "BERGS", CompanyName: "Berglunds snabbköp", ContactName: "Christina Berglund", ContactTitle: "Order Administrator", Address: "Berguvsvägen 8", City: "Luleå", PostalCode: "S-958 22", Country: "Sweden", Phone: "0921-12 34 65", Fax: "0921-12 34 67"},
}

// Seed fills empty catalog tables with sample rows. When adminPasswordHash is
// non-empty and no users exist, an "admin" account is created with it.
func Seed(ctx context.Context, db *gorm.DB, adminPasswordHash string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &models.Category{}, &sampleCategories); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.Product{}, &sampleProducts); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.Customer{}, &sampleCustomers); err != nil {
			return err
		}
		if adminPasswordHash == "" {
			return nil
		}
		admin := []models.User{{Username: "admin", DisplayName: "Administrator", PasswordHash: adminPasswordHash}}
		return seedIfEmpty(tx, &models.User{}, &admin)
	})
}

func seedIfEmpty(tx *gorm.DB, model any, rows any) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("count %T: %w", model, err)
	}
	if count > 0 {
		return nil
	}
	if err := tx.Create(rows).Error; err != nil {
		return fmt.Errorf("seed %T: %w", model, err)
	}
	return nil
}
