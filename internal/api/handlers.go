package api

import (
	"errors"
	"net/http"
	"strconv"

	"guardian/server/internal/analytics"
	"guardian/server/internal/inference"
	"guardian/server/internal/ledger"
	"guardian/server/internal/models"
	"guardian/server/internal/ranking"
	"guardian/server/internal/repository"
	"guardian/server/internal/scoring"
	"guardian/server/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRecommendationLimit = 20

type Handler struct {
	listings  repository.ListingRepository
	users     repository.UserRepository
	valuation *valuation.Engine
	analytics *analytics.Service
	ledger    ledger.Ledger
	queue     *ledger.SubmissionQueue
	analyzer  inference.Analyzer
	logger    *logrus.Logger
}

func NewHandler(
	listings repository.ListingRepository,
	users repository.UserRepository,
	valuationEngine *valuation.Engine,
	analyticsService *analytics.Service,
	ledgerService ledger.Ledger,
	queue *ledger.SubmissionQueue,
	analyzer inference.Analyzer,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Handler{
		listings:  listings,
		users:     users,
		valuation: valuationEngine,
		analytics: analyticsService,
		ledger:    ledgerService,
		queue:     queue,
		analyzer:  analyzer,
		logger:    logger,
	}
}

type ListingRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	City         string   `json:"city" binding:"required"`
	PropertyType string   `json:"property_type" binding:"required"`
	Price        float64  `json:"price" binding:"required,gte=0"`
	AreaSqm      float64  `json:"area_sqm" binding:"gte=0"`
	Bedrooms     *int     `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    *int     `json:"bathrooms" binding:"omitempty,gte=0"`
	Images       []string `json:"images"`
	OwnerID      string   `json:"owner_id" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (r *ListingRequest) toListing() *models.Listing {
	return &models.Listing{
		ID:           uuid.NewString(),
		Title:        r.Title,
		Description:  r.Description,
		City:         r.City,
		PropertyType: r.PropertyType,
		Price:        r.Price,
		AreaSqm:      r.AreaSqm,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		Images:       r.Images,
		OwnerID:      r.OwnerID,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

func (h *Handler) CreateListing(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}

	listing := req.toListing()
	if err := h.listings.Save(c.Request.Context(), listing); err != nil {
		h.logger.WithError(err).Error("Failed to save listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
		return
	}

	// Anchoring is asynchronous; a full queue is not a client error.
	if h.queue != nil {
		if err := h.queue.Push(listing); err != nil {
			h.logger.WithError(err).WithField("listing_id", listing.ID).Warn("Ledger submission not queued")
		}
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) GetAllListings(c *gin.Context) {
	filter := repository.ListingFilter{
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		OwnerID:      c.Query("owner_id"),
	}

	listings, err := h.listings.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetListing(c *gin.Context) {
	listing, ok := h.findListing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	err := h.listings.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ScoreListing runs the fraud rules and, when an analyzer is configured,
// attaches its independent analysis to the response.
func (h *Handler) ScoreListing(c *gin.Context) {
	listing, ok := h.findListing(c)
	if !ok {
		return
	}

	response := gin.H{"score": scoring.Score(listing)}

	if h.analyzer != nil && h.analyzer.Enabled() {
		analysis, err := h.analyzer.AnalyzeListing(c.Request.Context(), listing)
		if err != nil {
			h.logger.WithError(err).Warn("Listing analysis failed")
		} else {
			response["analysis"] = analysis
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) ValuateListing(c *gin.Context) {
	listing, ok := h.findListing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.valuation.Estimate(listing))
}

type ValuationRequest struct {
	City         string  `json:"city"`
	PropertyType string  `json:"property_type"`
	AreaSqm      float64 `json:"area_sqm" binding:"required,gt=0"`
	Bedrooms     *int    `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    *int    `json:"bathrooms" binding:"omitempty,gte=0"`
}

// ValuatePayload estimates an unsaved listing, backing the "what is my
// property worth" form.
func (h *Handler) ValuatePayload(c *gin.Context) {
	var req ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse valuation request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid valuation payload"})
		return
	}

	result := h.valuation.Estimate(&models.Listing{
		City:         req.City,
		PropertyType: req.PropertyType,
		AreaSqm:      req.AreaSqm,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
	})
	c.JSON(http.StatusOK, result)
}

type RecommendationRequest struct {
	Budget       float64 `json:"budget" binding:"required,gt=0"`
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
	Bedrooms     *int    `json:"bedrooms" binding:"omitempty,gte=0"`
}

// Recommend ranks all listings against the buyer's preferences. Truncation
// is a caller concern, so the limit lives here and not in the engine.
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse recommendation request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recommendation payload"})
		return
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultRecommendationLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defaultRecommendationLimit
	}

	listings, err := h.listings.List(c.Request.Context(), repository.ListingFilter{})
	if err != nil {
		h.logger.WithError(err).Error("Failed to list listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
		return
	}

	ranked := ranking.Rank(models.Preferences{
		Budget:       req.Budget,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
	}, listings)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	c.JSON(http.StatusOK, ranked)
}

func (h *Handler) VerifyListing(c *gin.Context) {
	listing, ok := h.findListing(c)
	if !ok {
		return
	}
	if listing.LedgerTxID == "" {
		c.JSON(http.StatusOK, gin.H{"anchored": false})
		return
	}

	anchored, err := h.ledger.VerifyListing(c.Request.Context(), listing.LedgerTxID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to verify listing on ledger")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify listing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"anchored": anchored, "transaction_id": listing.LedgerTxID})
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	ownerID := c.Param("owner_id")
	listings, err := h.listings.List(c.Request.Context(), repository.ListingFilter{OwnerID: ownerID})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load portfolio listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio"})
		return
	}
	c.JSON(http.StatusOK, h.analytics.Portfolio(ownerID, listings))
}

func (h *Handler) GetMarketStats(c *gin.Context) {
	city := c.Param("city")
	listings, err := h.listings.List(c.Request.Context(), repository.ListingFilter{City: city})
	if err != nil {
		h.logger.WithError(err).Error("Failed to load market listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load market stats"})
		return
	}
	c.JSON(http.StatusOK, h.analytics.Market(city, listings))
}

func (h *Handler) findListing(c *gin.Context) (*models.Listing, bool) {
	listing, err := h.listings.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return nil, false
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return nil, false
	}
	return listing, true
}
