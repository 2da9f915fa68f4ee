package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"prodcatalog/internal/database"
	"prodcatalog/internal/domain"
	"prodcatalog/internal/middleware"
	"prodcatalog/internal/modules/auth"
	"prodcatalog/internal/modules/product"
	jwtsvc "prodcatalog/internal/pkg/jwt"
	"prodcatalog/internal/repository"
	"prodcatalog/internal/storage"
)

type TestSuite struct {
	router      *gin.Engine
	db          *gorm.DB
	refreshRepo *repository.RefreshTokenRepository
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.RefreshToken{},
	))

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	imageStore, err := storage.NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	j := jwtsvc.New("e2e-test-key", "prodcatalog", "prodcatalog-clients", 15*time.Minute)

	authService := auth.NewService(userRepo, refreshRepo, j, 30*24*time.Hour)
	authHandler := auth.NewHandler(authService)

	productService := product.NewService(productRepo, imageStore)
	productHandler := product.NewHandler(productService)

	r := gin.New()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		productHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			productHandler.RegisterProtectedRoutes(protected)
		}
	}

	return &TestSuite{router: r, db: db, refreshRepo: refreshRepo}
}

func (s *TestSuite) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, TestResponse) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func (s *TestSuite) register(t *testing.T, username, email, pw string) (access, refresh string, user map[string]interface{}) {
	t.Helper()

	w, resp := s.do(t, "POST", "/api/v1/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": pw,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())
	require.True(t, resp.Success)

	access = resp.Data["access_token"].(string)
	refresh = resp.Data["refresh_token"].(string)
	user = resp.Data["user"].(map[string]interface{})
	return access, refresh, user
}

func TestRegisterLoginFlow(t *testing.T) {
	s := setupTestSuite(t)

	access, refresh, user := s.register(t, "alice", "a@x.com", "Pw123$")
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotEmpty(t, user["id"])

	// correct credentials
	w, resp := s.do(t, "POST", "/api/v1/auth/login", gin.H{
		"email": "a@x.com", "password": "Pw123$",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user["id"], resp.Data["user"].(map[string]interface{})["id"])

	// wrong password
	w, resp = s.do(t, "POST", "/api/v1/auth/login", gin.H{
		"email": "a@x.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)

	// unknown email gives the identical error
	w, resp = s.do(t, "POST", "/api/v1/auth/login", gin.H{
		"email": "nobody@x.com", "password": "Pw123$",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestRegisterDuplicates(t *testing.T) {
	s := setupTestSuite(t)
	s.register(t, "alice", "a@x.com", "Pw123$")

	w, resp := s.do(t, "POST", "/api/v1/auth/register", gin.H{
		"username": "other", "email": "A@X.com", "password": "Pw123$",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)

	w, resp = s.do(t, "POST", "/api/v1/auth/register", gin.H{
		"username": "ALICE", "email": "other@x.com", "password": "Pw123$",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "USERNAME_EXISTS", resp.Error.Code)
}

func TestRefreshRotation(t *testing.T) {
	s := setupTestSuite(t)
	_, tokenA, _ := s.register(t, "alice", "a@x.com", "Pw123$")

	// rotate A -> B
	w, resp := s.do(t, "POST", "/api/v1/auth/refresh-token", gin.H{"refresh_token": tokenA}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tokenB := resp.Data["refresh_token"].(string)
	assert.NotEqual(t, tokenA, tokenB)
	assert.NotEmpty(t, resp.Data["access_token"])

	// replaying A must fail permanently
	w, resp = s.do(t, "POST", "/api/v1/auth/refresh-token", gin.H{"refresh_token": tokenA}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TOKEN", resp.Error.Code)

	// B is live
	w, _ = s.do(t, "POST", "/api/v1/auth/refresh-token", gin.H{"refresh_token": tokenB}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// the chain is recorded
	old, err := s.refreshRepo.GetByToken(context.Background(), tokenA)
	require.NoError(t, err)
	assert.True(t, old.IsRevoked)
	require.NotNil(t, old.ReplacedByToken)
	assert.Equal(t, tokenB, *old.ReplacedByToken)
}

func TestRevokeAndLogout(t *testing.T) {
	s := setupTestSuite(t)
	access, refresh, _ := s.register(t, "alice", "a@x.com", "Pw123$")

	w, _ := s.do(t, "POST", "/api/v1/auth/revoke-token", gin.H{"refresh_token": refresh}, access)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := s.do(t, "POST", "/api/v1/auth/refresh-token", gin.H{"refresh_token": refresh}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TOKEN", resp.Error.Code)

	// revoking a token that was never issued still succeeds
	w, _ = s.do(t, "POST", "/api/v1/auth/revoke-token", gin.H{"refresh_token": "never-issued"}, access)
	assert.Equal(t, http.StatusOK, w.Code)

	// logout with an empty token is a no-op success
	w, _ = s.do(t, "POST", "/api/v1/auth/logout", gin.H{"refresh_token": ""}, access)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshExpiredToken(t *testing.T) {
	s := setupTestSuite(t)
	_, _, user := s.register(t, "alice", "a@x.com", "Pw123$")

	userID, err := uuid.Parse(user["id"].(string))
	require.NoError(t, err)

	// issue a token that is already expired
	_, err = s.refreshRepo.Create(context.Background(), userID, "expired-token", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	w, resp := s.do(t, "POST", "/api/v1/auth/refresh-token", gin.H{"refresh_token": "expired-token"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TOKEN", resp.Error.Code)
}

func TestGetUserByID(t *testing.T) {
	s := setupTestSuite(t)
	access, _, user := s.register(t, "alice", "a@x.com", "Pw123$")

	w, resp := s.do(t, "GET", "/api/v1/users/"+user["id"].(string), nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	got := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "alice", got["username"])

	// requires auth
	w, _ = s.do(t, "GET", "/api/v1/users/"+user["id"].(string), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, "GET", "/api/v1/users/"+uuid.NewString(), nil, access)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductCRUD(t *testing.T) {
	s := setupTestSuite(t)
	aliceToken, _, aliceUser := s.register(t, "alice", "a@x.com", "Pw123$")
	bobToken, _, _ := s.register(t, "bob", "b@x.com", "Pw123$")

	// create requires auth
	w, _ := s.do(t, "POST", "/api/v1/products", gin.H{"name": "Widget"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, "POST", "/api/v1/products", gin.H{
		"name":         "Widget",
		"product_code": "P001",
		"category":     "Tools",
		"price":        19.5,
		"quantity":     4,
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := resp.Data["product"].(map[string]interface{})
	productID := fmt.Sprintf("%.0f", created["id"].(float64))
	assert.Equal(t, aliceUser["id"], created["created_by"])

	// public read
	w, resp = s.do(t, "GET", "/api/v1/products/"+productID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Widget", resp.Data["product"].(map[string]interface{})["name"])

	// category filter is case-insensitive
	w, resp = s.do(t, "GET", "/api/v1/products?category=tools", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data["products"].([]interface{}), 1)

	w, resp = s.do(t, "GET", "/api/v1/products?category=food", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data["products"])

	// my-products only shows the caller's items
	w, resp = s.do(t, "GET", "/api/v1/products/my-products", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data["products"])

	// bob cannot update or delete alice's product
	w, resp = s.do(t, "PUT", "/api/v1/products/"+productID, gin.H{"name": "Hijacked"}, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	w, _ = s.do(t, "DELETE", "/api/v1/products/"+productID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// alice updates and deletes her own
	w, resp = s.do(t, "PUT", "/api/v1/products/"+productID, gin.H{
		"name": "Widget v2", "price": 25.0,
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Widget v2", resp.Data["product"].(map[string]interface{})["name"])

	w, _ = s.do(t, "DELETE", "/api/v1/products/"+productID, nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, "GET", "/api/v1/products/"+productID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
