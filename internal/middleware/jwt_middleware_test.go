package middleware

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lanari/internal/models"
	"lanari/internal/repositories"
	"lanari/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// newAuth returns an AuthService knowing one user plus a valid token for that user.
func newAuth(t *testing.T, isAdmin bool) (*services.AuthService, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: "u1", Email: "jan@example.com", PasswordHash: string(hash), IsActive: true, IsAdmin: isAdmin}

	repo := new(mockUserRepository)
	repo.On("GetByEmail", user.Email).Return(user, nil)
	repo.On("GetByID", user.ID).Return(user, nil)
	repo.On("GetByID", mock.Anything).Return(nil, repositories.ErrNotFound)

	auth := services.NewAuthService(repo, "middleware-secret", nil)
	token, err := auth.LoginUser(user.Email, "password123")
	require.NoError(t, err)
	return auth, token
}

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.SendString(user.ID)
		}
		return c.SendString("anonymous")
	})
	app.Get("/", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthRequired(t *testing.T) {
	auth, token := newAuth(t, false)
	app := newTestApp(AuthRequired(auth))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, tt.header)
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusOK {
				assert.Equal(t, "u1", body)
			}
		})
	}
}

func TestAuthOptional(t *testing.T) {
	auth, token := newAuth(t, false)
	app := newTestApp(AuthOptional(auth))

	status, body := get(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	_, body = get(t, app, "Bearer broken")
	assert.Equal(t, "anonymous", body)

	_, body = get(t, app, "Bearer "+token)
	assert.Equal(t, "u1", body)
}

func TestAdminRequired(t *testing.T) {
	auth, token := newAuth(t, false)
	status, _ := get(t, newTestApp(AuthRequired(auth), AdminRequired()), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, status)

	adminAuth, adminToken := newAuth(t, true)
	status, body := get(t, newTestApp(AuthRequired(adminAuth), AdminRequired()), "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u1", body)

	// Without AuthRequired in front there is no user to check.
	status, _ = get(t, newTestApp(AdminRequired()), "")
	assert.Equal(t, http.StatusForbidden, status)
}
