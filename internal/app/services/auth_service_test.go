package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
	"github.com/selim/alumnihub/internal/pkg/auth"
)

type authFixture struct {
	service  *AuthService
	users    *fakeUserStore
	profiles *fakeProfileStore
	tokens   *fakeTokenStore
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserStore(),
		profiles: newFakeProfileStore(),
		tokens:   newFakeTokenStore(),
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "alumnihub-test",
	})
	f.service = NewAuthService(f.users, f.profiles, f.tokens, &fakeTransactor{}, jwtService, zerolog.Nop())
	return f
}

func (f *authFixture) register(t *testing.T, email string, role models.RoleType) *dto.RegisterResponse {
	t.Helper()
	resp, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  "correct1horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return resp
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	f := newAuthFixture()

	resp := f.register(t, "ada@example.com", models.RoleStudent)

	user, _ := f.users.FindByID(context.Background(), resp.UserID)
	if user == nil {
		t.Fatal("user row missing")
	}
	if user.Password == "correct1horse" {
		t.Error("password must be stored hashed")
	}
	if user.Status != models.UserActive {
		t.Errorf("status = %q, want active", user.Status)
	}

	profile, _ := f.profiles.GetByUserID(context.Background(), resp.UserID)
	if profile == nil {
		t.Fatal("initial profile row missing")
	}
	if profile.FirstName != "Ada" || profile.LastName != "Lovelace" {
		t.Errorf("profile name = %q %q", profile.FirstName, profile.LastName)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:     "root@example.com",
		Password:  "correct1horse",
		FirstName: "Root",
		LastName:  "User",
		Role:      models.RoleAdmin,
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newAuthFixture()

	for _, password := range []string{"short1", "allletters", "12345678"} {
		_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
			Email:     "weak@example.com",
			Password:  password,
			FirstName: "Weak",
			LastName:  "Password",
			Role:      models.RoleStudent,
		})
		if !errors.Is(err, apperrors.ErrInvalidPassword) {
			t.Errorf("password %q: err = %v, want ErrInvalidPassword", password, err)
		}
	}
}

func TestLoginIssuesTokenSet(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "ada@example.com", models.RoleAlumni)

	resp, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct1horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.CSRFToken == "" {
		t.Error("token set incomplete")
	}
	if resp.Role != string(models.RoleAlumni) {
		t.Errorf("role = %q, want alumni", resp.Role)
	}

	stored, _ := f.tokens.FindByToken(context.Background(), resp.RefreshToken)
	if stored == nil {
		t.Error("refresh token must be persisted")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "ada@example.com", models.RoleStudent)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "not-the-one1",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture()
	resp := f.register(t, "ada@example.com", models.RoleStudent)
	if err := f.users.UpdateStatus(context.Background(), resp.UserID, models.UserInactive); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct1horse",
	})
	if !errors.Is(err, apperrors.ErrAccountInactive) {
		t.Errorf("err = %v, want ErrAccountInactive", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "ada@example.com", models.RoleStudent)
	login, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct1horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := f.service.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh token must rotate")
	}

	// The presented token is single use
	if _, err := f.service.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Errorf("err = %v, want ErrTokenNotFound on reuse", err)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	f := newAuthFixture()
	resp := f.register(t, "ada@example.com", models.RoleStudent)
	if err := f.tokens.Create(context.Background(), resp.UserID, "stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.service.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "stale"})
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}
