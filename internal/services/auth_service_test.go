package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/interviewxp/backend/internal/auth"
	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/utils"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return utils.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, utils.E(utils.CodeNotFound, "UserRepo.GetByEmail", "user not found", utils.ErrNotFound)
	}
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, utils.E(utils.CodeNotFound, "UserRepo.GetByID", "user not found", utils.ErrNotFound)
}

func newTestAuthService(t *testing.T) (AuthService, *memUsers) {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("test-secret", "interviewxp", "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	users := newMemUsers()
	return NewAuthService(users, tokens), users
}

func TestAuthRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, "Ada", "Ada@Example.com ", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if u.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized lowercase", u.Email)
	}
	if u.Role != models.RoleUser {
		t.Errorf("role = %q", u.Role)
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name, userName, email, password string
		wantCode                        utils.Code
	}{
		{"missing name", "", "a@b.com", "hunter22", utils.CodeInvalidArgument},
		{"bad email", "Ada", "not-an-email", "hunter22", utils.CodeInvalidArgument},
		{"short password", "Ada", "a@b.com", "abc", utils.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if !utils.IsCode(err, tt.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ada", "a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	_, _, err := svc.Register(ctx, "Bob", "a@b.com", "hunter23")
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
}

func TestAuthLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ada", "a@b.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	t.Run("success", func(t *testing.T) {
		u, token, err := svc.Login(ctx, "A@B.com", "hunter22")
		if err != nil {
			t.Fatal(err)
		}
		if token == "" || u.Email != "a@b.com" {
			t.Errorf("got user %+v, token %q", u, token)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "a@b.com", "wrong")
		if !utils.IsCode(err, utils.CodeUnauthorized) {
			t.Fatalf("err = %v, want UNAUTHORIZED", err)
		}
	})

	t.Run("unknown email maps to the same error", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@b.com", "hunter22")
		if !utils.IsCode(err, utils.CodeUnauthorized) {
			t.Fatalf("err = %v, want UNAUTHORIZED", err)
		}
	})
}

func TestAuthMe(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "Ada", "a@b.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Me(ctx, u.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "a@b.com" {
		t.Errorf("got %+v", got)
	}
}
