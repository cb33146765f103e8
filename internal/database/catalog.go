package database

import (
	"context"
	"errors"
	"fmt"

	"northwind-ai-api/internal/models"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned when no account matches the username.
var ErrUserNotFound = errors.New("user not found")

// Store is the read side of the Northwind catalog plus the API accounts table.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindProductsWithCategory loads the products whose id is in ids, with their
// category, in a single query. Rows come back in storage order.
func (s *Store) FindProductsWithCategory(ctx context.Context, ids []int) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).
		Joins("Category").
		Where("products.id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

// ListCustomers returns every customer row.
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := s.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// FindUserByUsername looks up an API account.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new account.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
