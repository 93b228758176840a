package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"guardian/server/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

const submitTimeout = 15 * time.Second

// SubmissionQueue decouples listing creation from ledger anchoring. Listings
// are pushed after they are saved; a background worker submits them and
// notifies subscribers with the receipt.
type SubmissionQueue struct {
	items    chan *models.Listing
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	ledger   Ledger
	logger   *logrus.Logger
	handlers []func(*models.Listing, *Receipt) error
}

// NewSubmissionQueue creates a queue with the specified buffer size.
func NewSubmissionQueue(bufferSize int, l Ledger, logger *logrus.Logger) *SubmissionQueue {
	return &SubmissionQueue{
		items:    make(chan *models.Listing, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		ledger:   l,
		logger:   logger,
		handlers: make([]func(*models.Listing, *Receipt) error, 0),
	}
}

// Push enqueues a listing for anchoring.
func (q *SubmissionQueue) Push(listing *models.Listing) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send so a slow relay never stalls listing creation.
	select {
	case q.items <- listing:
		q.logger.WithField("listing_id", listing.ID).Debug("Queued listing for ledger submission")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler invoked with each successful receipt.
func (q *SubmissionQueue) Subscribe(handler func(*models.Listing, *Receipt) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing queued listings.
func (q *SubmissionQueue) Start() {
	go q.process()
}

func (q *SubmissionQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case listing := <-q.items:
			if listing == nil {
				return
			}
			q.submit(listing)
		}
	}
}

func (q *SubmissionQueue) submit(listing *models.Listing) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	receipt, err := q.ledger.SubmitListing(ctx, listing)
	if err != nil {
		q.logger.WithError(err).WithField("listing_id", listing.ID).Error("Ledger submission failed")
		return
	}

	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(listing, receipt); err != nil {
			q.logger.WithError(err).Error("Receipt handler failed")
		}
	}
}

// Close stops the queue and prevents new submissions.
func (q *SubmissionQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the number of listings awaiting submission.
func (q *SubmissionQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *SubmissionQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
