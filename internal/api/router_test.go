package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/config"
	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository/memory"
	"github.com/jafarshop/dealmarket/internal/service"
)

const testPasscode = "let-me-in"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPasscode), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "test",
		Admin:       config.AdminConfig{PasscodeHash: string(hash)},
	}
	cat, err := catalog.Load("")
	require.NoError(t, err)

	logger := zap.NewNop()
	svcs := service.NewServices(memory.NewStore(), cat, cfg, logger)
	return NewRouter(cfg, svcs, cat, logger)
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func offerIDs(offers []domain.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.ID)
	}
	return out
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Offers(t *testing.T) {
	router := newTestRouter(t)

	type offersBody struct {
		Offers []domain.Offer `json:"offers"`
		Count  int            `json:"count"`
	}

	rec := do(t, router, http.MethodGet, "/v1/offers?category=electronics&sortBy=price&minPrice=abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[offersBody](t, rec)
	assert.Equal(t, []string{"3", "1"}, offerIDs(body.Offers), "malformed minPrice is ignored")

	rec = do(t, router, http.MethodGet, "/v1/offers?maxPrice=50&sortBy=price", nil)
	assert.Equal(t, []string{"6", "4"}, offerIDs(decode[offersBody](t, rec).Offers))

	rec = do(t, router, http.MethodGet, "/v1/offers?q=YOGA", nil)
	assert.Equal(t, []string{"6"}, offerIDs(decode[offersBody](t, rec).Offers))

	rec = do(t, router, http.MethodGet, "/v1/offers/1/related", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"3"}, offerIDs(decode[offersBody](t, rec).Offers))

	rec = do(t, router, http.MethodGet, "/v1/offers/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/categories", nil)
	cats := decode[struct {
		Categories map[string]int `json:"categories"`
	}](t, rec)
	assert.Equal(t, 2, cats.Categories["electronics"])
}

func TestRouter_Search(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/search?q=fitness%20shop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[domain.SearchResult](t, rec)
	assert.Equal(t, domain.SearchIntentShops, result.SearchType)
	assert.True(t, result.IsShopSearch)
	assert.Empty(t, result.Offers)
	require.Len(t, result.Shops, 1)
	assert.Equal(t, "shop-4", result.Shops[0].ID)

	rec = do(t, router, http.MethodGet, "/v1/search/intent?q=coffee%20in%20seattle", nil)
	intent := decode[map[string]string](t, rec)
	assert.Equal(t, string(domain.SearchIntentMixed), intent["intent"])

	rec = do(t, router, http.MethodGet, "/v1/shops?verified=true&sortBy=followers&rating=oops", nil)
	shops := decode[struct {
		Shops []domain.Shop `json:"shops"`
	}](t, rec)
	require.Len(t, shops.Shops, 4)
	assert.Equal(t, "shop-5", shops.Shops[0].ID)

	rec = do(t, router, http.MethodGet, "/v1/shops/shop-4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[struct {
		Offers      []domain.Offer `json:"offers"`
		IsFollowing bool           `json:"isFollowing"`
	}](t, rec)
	assert.Equal(t, []string{"3", "6"}, offerIDs(detail.Offers))
	assert.False(t, detail.IsFollowing)
}

func TestRouter_WishlistAndFollowing(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/v1/wishlist", map[string]string{"offerId": "2"}).Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/wishlist", map[string]string{"offerId": "2"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/v1/wishlist", map[string]string{"offerId": "nope"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, router, http.MethodPost, "/v1/wishlist", map[string]string{}).Code)

	rec := do(t, router, http.MethodGet, "/v1/offers/2", nil)
	assert.True(t, decode[map[string]any](t, rec)["inWishlist"].(bool))

	rec = do(t, router, http.MethodDelete, "/v1/wishlist/2", nil)
	assert.Equal(t, map[string]any{"removed": true, "count": float64(0)}, decode[map[string]any](t, rec))

	assert.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/v1/following", map[string]string{"shopId": "shop-4"}).Code)
	rec = do(t, router, http.MethodGet, "/v1/following", nil)
	following := decode[struct {
		Shops []domain.Shop `json:"shops"`
	}](t, rec)
	require.Len(t, following.Shops, 1)
	assert.Equal(t, 1, following.Shops[0].FollowerCount())

	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/v1/following", nil).Code)
	rec = do(t, router, http.MethodGet, "/v1/following", nil)
	assert.Equal(t, float64(0), decode[map[string]any](t, rec)["count"])
}

func TestRouter_Reviews(t *testing.T) {
	router := newTestRouter(t)
	review := map[string]any{"subjectType": "offer", "rating": 5, "title": "Great"}

	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/v1/subjects/1/reviews", review).Code)

	rec := do(t, router, http.MethodPut, "/v1/profile", map[string]string{"email": "pat@example.com", "name": "Pat"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/subjects/1/reviews", review)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Review](t, rec)
	assert.Equal(t, "Pat", created.UserName)

	bad := map[string]any{"subjectType": "offer", "rating": 7}
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, router, http.MethodPost, "/v1/subjects/1/reviews", bad).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/v1/subjects/999/reviews", review).Code)

	rec = do(t, router, http.MethodGet, "/v1/subjects/1/review-stats", nil)
	stats := decode[domain.ReviewStats](t, rec)
	assert.Equal(t, 1, stats.TotalReviews)
	assert.Equal(t, 5.0, stats.AverageRating)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/reviews/"+created.ID+"/helpful", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/v1/reviews/missing/helpful", nil).Code)

	rec = do(t, router, http.MethodGet, "/v1/subjects/1/reviews", nil)
	listed := decode[struct {
		Reviews []domain.Review `json:"reviews"`
	}](t, rec)
	require.Len(t, listed.Reviews, 1)
	assert.Equal(t, 1, listed.Reviews[0].Helpful)
}

func TestRouter_TicketsAndAdmin(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, "/v1/tickets", nil).Code)
	do(t, router, http.MethodPut, "/v1/profile", map[string]string{"email": "pat@example.com", "name": "Pat"})

	rec := do(t, router, http.MethodPost, "/v1/tickets", map[string]string{"title": "Help", "category": "orders"})
	require.Equal(t, http.StatusCreated, rec.Code)
	ticket := decode[domain.Ticket](t, rec)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, "pat@example.com", ticket.UserEmail)

	rec = do(t, router, http.MethodPost, "/v1/tickets/"+ticket.ID+"/messages", map[string]string{"message": "Any news?"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/tickets", nil)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["count"])

	assert.Equal(t, http.StatusForbidden, do(t, router, http.MethodGet, "/v1/tickets/TKT-001", nil).Code, "someone else's ticket")
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/v1/tickets/TKT-404", nil).Code)

	assert.Equal(t, http.StatusForbidden, do(t, router, http.MethodGet, "/v1/admin/tickets", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/v1/admin/session", map[string]string{"passcode": "guess"}).Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/v1/admin/session", map[string]string{"passcode": testPasscode}).Code)

	rec = do(t, router, http.MethodGet, "/v1/admin/tickets?status=open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	open := decode[struct {
		Tickets []domain.Ticket `json:"tickets"`
	}](t, rec)
	require.Len(t, open.Tickets, 1)
	assert.Equal(t, ticket.ID, open.Tickets[0].ID)

	rec = do(t, router, http.MethodPost, "/v1/admin/tickets/"+ticket.ID+"/status", map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		do(t, router, http.MethodPost, "/v1/admin/tickets/"+ticket.ID+"/status", map[string]string{"status": "archived"}).Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, router, http.MethodPost, "/v1/admin/tickets/TKT-404/status", map[string]string{"status": "closed"}).Code)

	rec = do(t, router, http.MethodPost, "/v1/admin/tickets/"+ticket.ID+"/assign", map[string]string{"adminId": "admin-2", "adminName": "Alex"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-2", decode[domain.Ticket](t, rec).AssignedTo.AdminID)

	rec = do(t, router, http.MethodGet, "/v1/admin/tickets/stats", nil)
	stats := decode[service.TicketStats](t, rec)
	assert.Equal(t, service.TicketStats{Total: 3, Resolved: 2, InProgress: 1}, stats)

	// admins may open any ticket
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/v1/tickets/TKT-001", nil).Code)

	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/v1/admin/session", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, router, http.MethodGet, "/v1/admin/tickets", nil).Code)

	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/v1/tickets/"+ticket.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/v1/tickets/"+ticket.ID, nil).Code)
}
