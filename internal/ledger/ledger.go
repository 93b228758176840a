package ledger

import (
	"context"
	"time"

	"guardian/server/internal/models"
)

// Receipt acknowledges that a listing was anchored on the ledger.
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	ConsensusAt   time.Time `json:"consensus_at"`
	Status        string    `json:"status"`
}

// Ledger anchors listing records on a distributed ledger. Implementations
// are selected once at startup: a relay-backed client in production, a stub
// everywhere else. Callers never fall back between them per call.
type Ledger interface {
	SubmitListing(ctx context.Context, listing *models.Listing) (*Receipt, error)
	VerifyListing(ctx context.Context, transactionID string) (bool, error)
}
