package devapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	users := NewDirectory()
	require.NoError(t, SeedUsers(users))
	return NewServer(Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}, users, zaptest.NewLogger(t))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, name, password string) (int, map[string]any) {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/auth/login", map[string]string{"name": name, "password": password}, "")
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

// -----------------------------------------------------------------------------
// Login
// -----------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t)
	code, out := login(t, s.Router(), "demo", "Demo@123")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["status"])
	require.NotEmpty(t, out["token"])

	user := out["user"].(map[string]any)
	assert.Equal(t, "demo", user["name"])
	assert.Equal(t, float64(1), user["id"])

	claims, err := s.validateToken(out["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "demo@shopfront.dev", claims.Email)
}

func TestLogin_NameIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	code, _ := login(t, s.Router(), "DEMO", "Demo@123")
	assert.Equal(t, http.StatusOK, code)
}

func TestLogin_Rejected(t *testing.T) {
	s := newTestServer(t)
	h := s.Router()

	code, out := login(t, h, "demo", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, false, out["status"])

	code, _ = login(t, h, "nobody", "Demo@123")
	assert.Equal(t, http.StatusUnauthorized, code)

	w := doJSON(t, h, http.MethodPost, "/auth/login", map[string]string{"name": "demo"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// -----------------------------------------------------------------------------
// ChangePassword
// -----------------------------------------------------------------------------

func TestChangePassword_Flow(t *testing.T) {
	s := newTestServer(t)
	h := s.Router()
	_, out := login(t, h, "demo", "Demo@123")
	token := out["token"].(string)

	w := doJSON(t, h, http.MethodPost, "/users/1/change-password",
		map[string]string{"oldPassword": "nope", "password": "New@1234"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":false,"message":"Invalid old password"}`, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/users/1/change-password",
		map[string]string{"oldPassword": "Demo@123", "password": "New@1234"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":true,"message":"Password changed"}`, w.Body.String())

	code, _ := login(t, h, "demo", "Demo@123")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = login(t, h, "demo", "New@1234")
	assert.Equal(t, http.StatusOK, code)
}

func TestChangePassword_RequiresMatchingToken(t *testing.T) {
	s := newTestServer(t)
	h := s.Router()
	body := map[string]string{"oldPassword": "Admin@123", "password": "New@1234"}

	w := doJSON(t, h, http.MethodPost, "/users/2/change-password", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/users/2/change-password", body, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, out := login(t, h, "demo", "Demo@123")
	w = doJSON(t, h, http.MethodPost, "/users/2/change-password", body, out["token"].(string))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_RejectsExpiredAndForeignTokens(t *testing.T) {
	s := newTestServer(t)
	h := s.Router()
	body := map[string]string{"oldPassword": "Demo@123", "password": "New@1234"}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	w := doJSON(t, h, http.MethodPost, "/users/1/change-password", body, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	w = doJSON(t, h, http.MethodPost, "/users/1/change-password", body, foreign)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// -----------------------------------------------------------------------------
// Products
// -----------------------------------------------------------------------------

func TestListProducts(t *testing.T) {
	s := newTestServer(t)
	h := s.Router()

	w := doJSON(t, h, http.MethodGet, "/products?category_id=1&limit=4", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var phones []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &phones))
	require.Len(t, phones, 4)
	for _, p := range phones {
		assert.Equal(t, float64(CategoryPhones), p["category_id"])
	}
	// string prices are passed through untouched
	assert.Equal(t, "28.990.000 ₫", phones[1]["price"])

	w = doJSON(t, h, http.MethodGet, "/products", nil, "")
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 7)
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)
	h := s.Router()

	w := doJSON(t, h, http.MethodGet, "/products/10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AirPods Pro 2")

	w = doJSON(t, h, http.MethodGet, "/products/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodGet, "/products/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s.Router(), http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDirectory_RejectsDuplicateName(t *testing.T) {
	d := NewDirectory()
	_, err := d.Add("demo", "a@b.c", "x")
	require.NoError(t, err)
	_, err = d.Add("Demo", "c@d.e", "y")
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	users := NewDirectory()
	s := NewServer(Config{JWTSecret: "x", AllowOrigins: []string{"http://localhost:5173"}}, users, nil)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
