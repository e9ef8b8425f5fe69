package services

import (
	"context"
	"errors"
	"strings"

	"github.com/interviewxp/backend/internal/auth"
	"github.com/interviewxp/backend/internal/models"
	mongorepo "github.com/interviewxp/backend/internal/repositories/mongo"
	"github.com/interviewxp/backend/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  mongorepo.UserRepository
	tokens *auth.TokenIssuer
}

func NewAuthService(users mongorepo.UserRepository, tokens *auth.TokenIssuer) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	const op = "AuthService.Register"

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "name, email, and password are required", nil)
	}
	if !strings.Contains(email, "@") {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "invalid email address", nil)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooShort) {
			return nil, "", utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, "", utils.E(utils.CodeConflict, op, "email already registered", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	token, err := s.tokens.Issue(u.ID.Hex(), u.Name, string(u.Role))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	token, err := s.tokens.Issue(u.ID.Hex(), u.Name, string(u.Role))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Me"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}
