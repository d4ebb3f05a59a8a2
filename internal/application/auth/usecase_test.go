package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amanahtour/gudang-api/internal/application/auth"
	"github.com/amanahtour/gudang-api/internal/application/dto"
	"github.com/amanahtour/gudang-api/internal/domain"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/infrastructure/memory"
	pkgjwt "github.com/amanahtour/gudang-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-gudang"
	testPassword = "rahasia-gudang-123"
)

func setupAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.New()
	store.SeedUser(&entity.User{
		ID:           "44444444-4444-4444-4444-444444444444",
		Email:        "admin@amanahtour.co.id",
		PasswordHash: string(hash),
		Name:         "Admin Gudang",
		Role:         entity.RoleAdmin,
		Status:       "active",
	})

	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "gudang-api-test",
	})
}

func TestLogin_Sukses(t *testing.T) {
	uc := setupAuth(t)

	out, err := uc.Login(dto.LoginRequest{
		Email:    "admin@amanahtour.co.id",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Admin Gudang", out.User.Name)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordSalah(t *testing.T) {
	uc := setupAuth(t)

	_, err := uc.Login(dto.LoginRequest{
		Email:    "admin@amanahtour.co.id",
		Password: "password-salah",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Email tak dikenal harus mengembalikan error yang sama dengan password
// salah supaya tidak membocorkan email terdaftar.
func TestLogin_EmailTidakDikenal(t *testing.T) {
	uc := setupAuth(t)

	_, err := uc.Login(dto.LoginRequest{
		Email:    "siapa@amanahtour.co.id",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
