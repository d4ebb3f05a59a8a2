package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/amanahtour/gudang-api/internal/interfaces/http"
	pkgjwt "github.com/amanahtour/gudang-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "gudang-api-test"
	testExpMin    = 60
)

// buildProtectedApp membangun app Fiber minimal: AuthMiddleware +
// RequireRole + handler dummy yang mengembalikan 200 bila lolos.
func buildProtectedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doProtectedRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_TanpaHeader(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatHeaderSalah(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, "Token abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenTidakValid(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, "Bearer bukan-jwt-valid")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenDariSecretLain(t *testing.T) {
	app := buildProtectedApp("admin")
	tok, err := pkgjwt.Generate("secret-lain", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doProtectedRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_RoleSesuai(t *testing.T) {
	app := buildProtectedApp("admin", "manager")
	resp := doProtectedRequest(t, app, tokenForRole(t, "manager"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RoleTidakDiizinkan(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, tokenForRole(t, "staff"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
