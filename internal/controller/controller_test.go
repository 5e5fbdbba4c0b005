package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rtomilin/pennywise/internal/api"
	"github.com/rtomilin/pennywise/internal/controller"
	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/service"
	"github.com/rtomilin/pennywise/internal/storage/memory"
	"github.com/rtomilin/pennywise/internal/util"
)

type testHasher struct{}

func (testHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (testHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zap.NewNop().Sugar()
	tokenService := service.NewTokenService(&util.TokenConfig{
		JwtSecretKey:     []byte("test-secret"),
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
		MaxRefreshTokens: 5,
	})
	authService := service.NewAuthService(
		tokenService,
		memory.NewUserRepository(),
		memory.NewUserLocker(),
		testHasher{},
		logger,
		5,
	)
	finance := memory.NewFinanceRepository()
	financeService := service.NewFinanceService(finance, finance)

	e := echo.New()
	e.HTTPErrorHandler = api.ErrorHandler(logger)
	c := controller.NewController(logger, authService, financeService)
	controller.RegisterRoutes(e, c, api.BearerAuthMiddleware(tokenService))
	return e
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, e *echo.Echo) models.TokenPairResponse {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/signup", `{"name":"A","email":"a@x.com","password":"p"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var pair models.TokenPairResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	return pair
}

func TestSignUpEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	pair := signUp(t, e)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, pair.User)
	assert.Equal(t, "a@x.com", pair.User.Email)
}

func TestSignUpEndpoint_MissingFields(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/signup", `{"name":"A"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "password")
}

func TestSignUpEndpoint_DuplicateEmail(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	signUp(t, e)

	rec := doJSON(e, http.MethodPost, "/signup", `{"name":"B","email":"a@x.com","password":"q"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogInEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	signUp(t, e)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"a@x.com","password":"p"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/login", `{"email":"a@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	pair := signUp(t, e)

	rec := doJSON(e, http.MethodPost, "/refresh", `{"refreshToken":"`+pair.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The rotated-away token is rejected on reuse.
	rec = doJSON(e, http.MethodPost, "/refresh", `{"refreshToken":"`+pair.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid refresh token")
}

func TestRefreshEndpoint_MissingField(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/refresh", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "refreshToken")
}

func TestLogOutEndpoint_Idempotent(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	pair := signUp(t, e)

	body := `{"refreshToken":"` + pair.RefreshToken + `"}`
	rec := doJSON(e, http.MethodPost, "/logout", body, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/logout", body, "")
	assert.Equal(t, http.StatusOK, rec.Code, "second logout succeeds the same way")
}

func TestTransactionsEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	pair := signUp(t, e)

	rec := doJSON(e, http.MethodPost, "/transactions", `{"title":"salary","amount":1000,"kind":"income","occurredAt":"2026-08-01T00:00:00Z"}`, pair.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/transactions", "", pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "salary")

	rec = doJSON(e, http.MethodPost, "/transactions", `{"title":"x","amount":1,"kind":"weird"}`, pair.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuardedRoutes_RequireBearer(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/transactions", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/goals", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoalsEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)
	pair := signUp(t, e)

	rec := doJSON(e, http.MethodPost, "/goals", `{"name":"vacation","targetAmount":2500}`, pair.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var goal models.SavingsGoal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))

	rec = doJSON(e, http.MethodPut, "/goals/"+goal.ID, `{"name":"vacation","targetAmount":3000,"savedAmount":100}`, pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/goals/"+goal.ID, "", pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/goals/"+goal.ID, "", pair.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
