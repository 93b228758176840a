package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"guardian/server/internal/analytics"
	"guardian/server/internal/inference"
	"guardian/server/internal/ledger"
	"guardian/server/internal/models"
	"guardian/server/internal/repository"
	"guardian/server/internal/valuation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func setupRouter(listings ...models.Listing) (*gin.Engine, *repository.MemoryListings) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryListings(listings...)
	engine := valuation.NewEngine(valuation.DefaultRates())
	handler := NewHandler(
		repo,
		repository.NewMemoryUsers(),
		engine,
		analytics.NewService(engine),
		ledger.NewStub(""),
		nil, // submissions tested in the ledger package
		inference.NewStubAnalyzer(),
		logrus.New(),
	)

	router := gin.New()
	SetupRoutes(router, handler)
	return router, repo
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateListing(t *testing.T) {
	router, repo := setupRouter()

	w := doRequest(router, http.MethodPost, "/api/listings", gin.H{
		"title":         "3-bed apartment in Lekki",
		"description":   "Bright, newly renovated three bedroom apartment close to the waterfront.",
		"city":          "Lagos",
		"property_type": "apartment",
		"price":         65000000,
		"area_sqm":      140,
		"bedrooms":      3,
		"owner_id":      "u1",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	saved, err := repo.List(nil, repository.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestCreateListing_InvalidPayload(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodPost, "/api/listings", gin.H{"title": "no city or price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetListing_NotFound(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodGet, "/api/listings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScoreListing(t *testing.T) {
	router, _ := setupRouter(models.Listing{
		ID:      "l1",
		Price:   500000,
		AreaSqm: 0,
	})

	w := doRequest(router, http.MethodPost, "/api/listings/l1/score", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Score    models.ScoreResult  `json:"score"`
		Analysis *inference.Analysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, 45, response.Score.FraudScore)
	assert.Equal(t, models.RiskMedium, response.Score.RiskLevel)
	assert.Equal(t, models.RecommendReview, response.Score.Recommendation)
	require.NotNil(t, response.Analysis)
	assert.NotEmpty(t, response.Analysis.Concerns)
}

func TestValuateListing(t *testing.T) {
	router, _ := setupRouter(models.Listing{
		ID:           "l1",
		City:         "Lagos",
		PropertyType: "duplex",
		AreaSqm:      200,
	})

	w := doRequest(router, http.MethodPost, "/api/listings/l1/valuation", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.ValuationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(75000000), result.PredictedPrice)
	assert.Equal(t, 0.75, result.Confidence)
}

func TestValuatePayload(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodPost, "/api/valuations", gin.H{
		"city":          "Unknown City",
		"property_type": "apartment",
		"area_sqm":      100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result models.ValuationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(10000000), result.PredictedPrice)
	assert.Equal(t, float64(100000), result.PricePerSqm)
}

func TestValuatePayload_RequiresArea(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodPost, "/api/valuations", gin.H{"city": "Lagos"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommend(t *testing.T) {
	router, _ := setupRouter(
		models.Listing{ID: "far", Price: 90000000, City: "Kano"},
		models.Listing{ID: "fit", Price: 48000000, City: "Lagos", PropertyType: "apartment", Bedrooms: intPtr(2)},
	)

	w := doRequest(router, http.MethodPost, "/api/recommendations", gin.H{
		"budget":        50000000,
		"location":      "Lagos",
		"property_type": "apartment",
		"bedrooms":      2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var ranked []models.RankedListing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "fit", ranked[0].Listing.ID)
	assert.Equal(t, float64(100), ranked[0].MatchScore)
}

func TestRecommend_LimitTruncates(t *testing.T) {
	var listings []models.Listing
	for _, id := range strings.Split("a b c d e", " ") {
		listings = append(listings, models.Listing{ID: id, Price: 1000})
	}
	router, _ := setupRouter(listings...)

	w := doRequest(router, http.MethodPost, "/api/recommendations?limit=3", gin.H{"budget": 2000})
	require.Equal(t, http.StatusOK, w.Code)

	var ranked []models.RankedListing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranked))
	assert.Len(t, ranked, 3)
}

func TestVerifyListing_NotAnchored(t *testing.T) {
	router, _ := setupRouter(models.Listing{ID: "l1"})

	w := doRequest(router, http.MethodGet, "/api/listings/l1/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anchored": false}`, w.Body.String())
}

func TestGetPortfolio(t *testing.T) {
	router, _ := setupRouter(
		models.Listing{ID: "a", OwnerID: "u1", City: "Nowhere", PropertyType: "apartment", AreaSqm: 100, Price: 12000000},
		models.Listing{ID: "b", OwnerID: "u2", City: "Nowhere", PropertyType: "apartment", AreaSqm: 50, Price: 4000000},
	)

	w := doRequest(router, http.MethodGet, "/api/portfolio/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary analytics.PortfolioSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.ListingCount)
	assert.Equal(t, "12000000", summary.TotalDeclared.String())
}

func TestGetMarketStats(t *testing.T) {
	router, _ := setupRouter(
		models.Listing{ID: "a", City: "Lagos", Price: 30000000, AreaSqm: 150},
	)

	w := doRequest(router, http.MethodGet, "/api/market/Lagos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats analytics.MarketStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.ListingCount)
	assert.Equal(t, float64(200000), stats.AvgPricePerSqm)
}

func TestUserLifecycle(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, http.MethodPost, "/api/users", gin.H{"email": "ada@example.com", "name": "Ada"})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	w = doRequest(router, http.MethodGet, "/api/users/"+user.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Duplicate registration is rejected.
	w = doRequest(router, http.MethodPost, "/api/users", gin.H{"email": "ada@example.com", "name": "Ada"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
