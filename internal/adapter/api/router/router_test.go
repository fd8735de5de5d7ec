package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"agrolink/internal/adapter/api"
	"agrolink/internal/adapter/api/handler"
	"agrolink/internal/adapter/api/middleware"
	"agrolink/internal/adapter/repository"
	"agrolink/internal/infrastructure/metrics"
	"agrolink/internal/infrastructure/password"
	"agrolink/internal/infrastructure/token"
	"agrolink/internal/usecase"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type providerJSON struct {
	ID       int64  `json:"id"`
	Location string `json:"location"`
	User     struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"user"`
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *echo.Echo {
	t.Helper()

	store := repository.NewMemoryStore()
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, repository.SeedDemoData(context.Background(), store, hasher.Hash))

	tokens := token.NewManager("router-test-secret", time.Hour, token.NewMemoryRevocationStore())
	notifications := usecase.NewNotificationUseCase(store.Notifications, nil)
	collector := metrics.NewCollector()

	handler.Setup(
		usecase.NewAuthUseCase(store.Users, store.Providers, store.Producers, hasher, tokens),
		usecase.NewUserUseCase(store.Users, store.Providers, store.Producers, hasher),
		usecase.NewProviderUseCase(store.Providers, store.Users, store.Reviews),
		usecase.NewProducerUseCase(store.Producers, store.Users),
		usecase.NewBookingUseCase(store.Bookings, store.Producers, store.Providers, store.Users, notifications),
		usecase.NewReviewUseCase(store.Reviews, store.Bookings, store.Providers, notifications),
		notifications,
		collector,
	)
	handler.SetupHealthHandler("memory")

	if limiter == nil {
		limiter = middleware.NewRateLimiter(1000, 1000)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.Use(middleware.Metrics(collector))

	Setup(e, middleware.NewAuthMiddleware(tokens), limiter)
	SetupMetricsRouter(e, registry)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body, bearer string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func login(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec, env := do(t, e, http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, nil)

	rec, _ := do(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSearchProviders(t *testing.T) {
	e := newTestServer(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/providers/search?latitude=-23.5505&longitude=-46.6333&maxDistance=50", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var providers []providerJSON
	require.NoError(t, json.Unmarshal(env.Data, &providers))
	require.Len(t, providers, 1)
	assert.EqualValues(t, 1, providers[0].ID)
	assert.Equal(t, "carlos.santos", providers[0].User.Username)
	assert.Empty(t, providers[0].User.Password)

	rec, env = do(t, e, http.MethodGet, "/api/providers/search?location=paulo&isAvailable=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &providers))
	assert.Len(t, providers, 1)

	rec, env = do(t, e, http.MethodGet, "/api/providers/search?serviceType=tractor", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSearchProviders_BadQuery(t *testing.T) {
	e := newTestServer(t, nil)

	for _, query := range []string{"latitude=abc", "maxDistance=far", "isAvailable=maybe", "isAvailable=1"} {
		rec, env := do(t, e, http.MethodGet, "/api/providers/search?"+query, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		require.NotNil(t, env.Error, query)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	}
}

func TestNearbyProviders(t *testing.T) {
	e := newTestServer(t, nil)

	rec, _ := do(t, e, http.MethodGet, "/api/providers/nearby?latitude=-23.5505", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, e, http.MethodGet, "/api/providers/nearby?latitude=-23.5505&longitude=-46.6333", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var providers []providerJSON
	require.NoError(t, json.Unmarshal(env.Data, &providers))
	assert.Len(t, providers, 1)

	rec, env = do(t, e, http.MethodGet, "/api/providers/nearby?latitude=-23.5505&longitude=-46.6333&radius=100", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &providers))
	assert.Len(t, providers, 2)
}

func TestGetProvider(t *testing.T) {
	e := newTestServer(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/providers/2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"reviews":`)

	rec, _ = do(t, e, http.MethodGet, "/api/providers/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/providers/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	e := newTestServer(t, nil)

	register := `{"username":"maria.souza","email":"maria@example.com","password":"s3cret-pass","name":"Maria Souza",` +
		`"userType":"producer","location":"Piracicaba, SP","farmName":"Sítio Boa Vista"}`

	rec, env := do(t, e, http.MethodPost, "/api/auth/register", register, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"token"`)
	assert.NotContains(t, string(env.Data), "s3cret-pass")

	rec, env = do(t, e, http.MethodPost, "/api/auth/register", register, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, env = do(t, e, http.MethodPost, "/api/auth/register", `{"username":"x","email":"not-an-email"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/auth/login", `{"email":"joao@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok := login(t, e, "joao@example.com")

	rec, env = do(t, e, http.MethodGet, "/api/users/me", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"farmName":"Fazenda Santa Maria"`)

	rec, _ = do(t, e, http.MethodPost, "/api/auth/logout", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/api/users/me", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingReviewAndNotificationFlow(t *testing.T) {
	e := newTestServer(t, nil)
	joao := login(t, e, "joao@example.com")
	carlos := login(t, e, "carlos@example.com")

	rec, env := do(t, e, http.MethodPost, "/api/bookings",
		`{"producerId":1,"providerId":1,"scheduledDate":"2026-11-03T08:00:00Z","area":40}`, joao)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, "pending", booking.Status)

	rec, _ = do(t, e, http.MethodPost, "/api/bookings",
		`{"producerId":1,"providerId":1,"scheduledDate":"2026-11-03T08:00:00Z"}`, carlos)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/api/notifications/1?page=1&limit=10", "", carlos)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []struct {
			ID     int64  `json:"id"`
			Type   string `json:"type"`
			IsRead bool   `json:"isRead"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "booking", page.Items[0].Type)

	rec, _ = do(t, e, http.MethodGet, "/api/notifications/1", "", joao)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = do(t, e, http.MethodPatch, "/api/notifications/1/read", "", carlos)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"isRead":true`)

	rec, _ = do(t, e, http.MethodPatch, "/api/bookings/1", `{"status":"finished"}`, carlos)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, e, http.MethodPatch, "/api/bookings/1", `{"status":"completed"}`, carlos)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"completed"`)

	rec, env = do(t, e, http.MethodGet, "/api/bookings/producer/1", "", joao)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"farmName":"Fazenda Santa Maria"`)

	rec, env = do(t, e, http.MethodPost, "/api/reviews", `{"bookingId":1,"revieweeId":1,"rating":6}`, joao)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = do(t, e, http.MethodPost, "/api/reviews", `{"bookingId":1,"revieweeId":1,"rating":4,"comment":"Ótimo"}`, joao)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = do(t, e, http.MethodGet, "/api/providers/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"rating":4,`)
	assert.Contains(t, string(env.Data), `"totalReviews":1`)

	rec, env = do(t, e, http.MethodGet, "/api/reviews/provider/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"comment":"Ótimo"`)
}

func TestUpdateProviderOwnership(t *testing.T) {
	e := newTestServer(t, nil)
	ana := login(t, e, "ana@example.com")

	rec, _ := do(t, e, http.MethodPatch, "/api/providers/1", `{"isAvailable":false}`, ana)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := do(t, e, http.MethodPatch, "/api/providers/2", `{"isAvailable":false,"rating":1}`, ana)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"isAvailable":false`)
	assert.Contains(t, string(env.Data), `"rating":4.8`)

	rec, env = do(t, e, http.MethodGet, "/api/providers/nearby?latitude=-22.9056&longitude=-47.0608&radius=10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestWeather(t *testing.T) {
	e := newTestServer(t, nil)

	rec, env := do(t, e, http.MethodGet, "/api/weather", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"suitableForSpraying":true`)
}

func TestRateLimitedLogin(t *testing.T) {
	e := newTestServer(t, middleware.NewRateLimiter(0.001, 2))
	body := `{"email":"joao@example.com","password":"wrong"}`

	for i := 0; i < 2; i++ {
		rec, _ := do(t, e, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec, env := do(t, e, http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Other routes are not limited.
	rec, _ = do(t, e, http.MethodGet, "/api/weather", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestServer(t, nil)

	do(t, e, http.MethodGet, "/api/providers/search?location=campinas", "", "")

	rec, _ := do(t, e, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `agrolink_http_requests_total{method="GET",route="/api/providers/search",status="200"} 1`)
	assert.Contains(t, body, `agrolink_provider_search_results_count{kind="search"} 1`)
}
