package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"guardian/server/internal/models"
)

// Stub is an in-process Ledger for development and tests. Transaction IDs
// follow the account@seconds.nanos shape the real network uses, so clients
// exercising the stub see realistic identifiers.
type Stub struct {
	account string
	now     func() time.Time

	mu        sync.RWMutex
	submitted map[string]string // transaction ID -> listing ID
}

func NewStub(account string) *Stub {
	if account == "" {
		account = "0.0.2"
	}
	return &Stub{
		account:   account,
		now:       time.Now,
		submitted: make(map[string]string),
	}
}

func (s *Stub) SubmitListing(_ context.Context, listing *models.Listing) (*Receipt, error) {
	ts := s.now()
	txID := fmt.Sprintf("%s@%d.%09d", s.account, ts.Unix(), ts.Nanosecond())

	s.mu.Lock()
	s.submitted[txID] = listing.ID
	s.mu.Unlock()

	return &Receipt{
		TransactionID: txID,
		ConsensusAt:   ts,
		Status:        "SUCCESS",
	}, nil
}

func (s *Stub) VerifyListing(_ context.Context, transactionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.submitted[transactionID]
	return ok, nil
}
