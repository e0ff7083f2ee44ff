package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-api/config"
	"restaurant-api/logger"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"is_staff": GetPrincipal(c).IsStaff,
			"req":      GetRequestID(c),
		})
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Email: "a@example.com", IsStaff: true}
	pair, err := GenerateTokenPair(user)
	require.NoError(t, err)

	claims, err := ParseToken(pair.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsStaff)

	_, err = ParseToken(pair.Access, RefreshToken)
	assert.Error(t, err)
	_, err = ParseToken(pair.Refresh, RefreshToken)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	prev := config.AccessTokenTTL
	config.AccessTokenTTL = -time.Minute
	t.Cleanup(func() { config.AccessTokenTTL = prev })

	token, err := GenerateToken(&models.User{ID: 1}, AccessToken)
	require.NoError(t, err)
	_, err = ParseToken(token, AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAuthRequired(t *testing.T) {
	r := newEngine(AuthRequired())

	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer nope"}).Code)

	pair, err := GenerateTokenPair(&models.User{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer " + pair.Refresh}).Code)

	w := get(r, map[string]string{"Authorization": "Bearer " + pair.Access})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["user_id"])
}

func TestAdminRequired(t *testing.T) {
	r := newEngine(AuthRequired(), AdminRequired())

	customer, err := GenerateToken(&models.User{ID: 1}, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, map[string]string{"Authorization": "Bearer " + customer}).Code)

	staff, err := GenerateToken(&models.User{ID: 2, IsStaff: true}, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, map[string]string{"Authorization": "Bearer " + staff}).Code)

	scopeEngine := gin.New()
	scopeEngine.GET("/", func(c *gin.Context) {
		// outside the admin group the scope is unusable
		assert.Zero(t, GetAdminScope(c).ActorID())
		c.Status(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, get(scopeEngine, nil).Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(RequestID(), RequestLogger(logger.New("test", &buf, slog.LevelInfo)))

	w := get(r, map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = get(r, nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	var line map[string]any
	first, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(first, &line))
	assert.Equal(t, "http_request", line["action"])
	assert.Equal(t, "abc-123", line["request_id"])
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"https://app.example.com"}))
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
