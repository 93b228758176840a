package repository

import (
	"context"
	"errors"

	"guardian/server/internal/models"
)

var ErrNotFound = errors.New("record not found")

// ListingFilter narrows List results. Zero-value fields are ignored.
type ListingFilter struct {
	City         string
	PropertyType string
	OwnerID      string
}

// ListingRepository is the persistence capability for listings. Handlers
// receive an implementation at construction time; they never reach for a
// package-level store.
type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	Save(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is the persistence capability for users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}
