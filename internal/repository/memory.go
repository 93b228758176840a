package repository

import (
	"context"
	"sort"
	"sync"

	"guardian/server/internal/models"
)

// MemoryListings is an in-memory ListingRepository used in tests and for
// seeding demo data. Safe for concurrent use.
type MemoryListings struct {
	mu       sync.RWMutex
	listings map[string]models.Listing
	order    []string
}

func NewMemoryListings(seed ...models.Listing) *MemoryListings {
	r := &MemoryListings{listings: make(map[string]models.Listing)}
	for i := range seed {
		r.listings[seed[i].ID] = seed[i]
		r.order = append(r.order, seed[i].ID)
	}
	return r
}

func (r *MemoryListings) FindByID(_ context.Context, id string) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &listing, nil
}

func (r *MemoryListings) List(_ context.Context, filter ListingFilter) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Listing
	for _, id := range r.order {
		l := r.listings[id]
		if filter.City != "" && l.City != filter.City {
			continue
		}
		if filter.PropertyType != "" && l.PropertyType != filter.PropertyType {
			continue
		}
		if filter.OwnerID != "" && l.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *MemoryListings) Save(_ context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ID]; !ok {
		r.order = append(r.order, listing.ID)
	}
	r.listings[listing.ID] = *listing
	return nil
}

func (r *MemoryListings) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return ErrNotFound
	}
	delete(r.listings, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryUsers is an in-memory UserRepository.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUsers(seed ...models.User) *MemoryUsers {
	r := &MemoryUsers{users: make(map[string]models.User)}
	for i := range seed {
		r.users[seed[i].ID] = seed[i]
	}
	return r
}

func (r *MemoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.users[id].Email == email {
			user := r.users[id]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}
