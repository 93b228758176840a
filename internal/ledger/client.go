package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"guardian/server/internal/models"

	"github.com/sirupsen/logrus"
)

// Client submits listings to a ledger relay service over HTTP. The relay
// owns the network keys; this client only speaks its REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *logrus.Logger
}

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type submitRequest struct {
	ListingID string  `json:"listing_id"`
	City      string  `json:"city"`
	Price     float64 `json:"price"`
	OwnerID   string  `json:"owner_id"`
}

func (c *Client) SubmitListing(ctx context.Context, listing *models.Listing) (*Receipt, error) {
	payload := submitRequest{
		ListingID: listing.ID,
		City:      listing.City,
		Price:     listing.Price,
		OwnerID:   listing.OwnerID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submit payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transactions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ledger relay: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ledger relay error (status %d): %s", resp.StatusCode, string(body))
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("failed to decode relay response: %v", err)
	}

	c.logger.WithField("transaction_id", receipt.TransactionID).Debug("Listing anchored on ledger")
	return &receipt, nil
}

func (c *Client) VerifyListing(ctx context.Context, transactionID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/transactions/"+transactionID, nil)
	if err != nil {
		return false, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach ledger relay: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("ledger relay error (status %d): %s", resp.StatusCode, string(body))
	}
}
