package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"
)

// TokenTTL is how long an issued session stays valid unless logged out.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidInput       = errors.New("invalid input")
	// ErrNotAuthorized covers every verification failure. Callers must not
	// learn which check failed.
	ErrNotAuthorized = errors.New("not authorized")
)

type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   string
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, secret string) *AuthService {
	return &AuthService{users: users, sessions: sessions, secret: secret}
}

func validAccount(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidInput
	}
	if len(password) < 6 {
		return "", ErrInvalidInput
	}
	return email, nil
}

// Register creates a student account. Self-registration never produces any
// other role.
func (a *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	return a.create(ctx, email, password, models.RoleStudent)
}

// CreateAdmin is reachable only behind the admin role gate.
func (a *AuthService) CreateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	return a.create(ctx, email, password, models.RoleAdmin)
}

func (a *AuthService) create(ctx context.Context, email, password, role string) (*models.User, error) {
	email, err := validAccount(email, password)
	if err != nil {
		return nil, err
	}
	existing, _, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return a.users.Create(ctx, email, hash, role)
}

// Issue signs a session token for the user and records it in the active
// list. The token authenticates requests until logout or expiry.
func (a *AuthService) Issue(ctx context.Context, u *models.User) (string, error) {
	tok, err := utils.SignJWT(a.secret, u.ID, u.Role, TokenTTL)
	if err != nil {
		return "", err
	}
	if err := a.sessions.Add(ctx, u.ID, utils.HashToken(tok), time.Now().Add(TokenTTL)); err != nil {
		return "", err
	}
	return tok, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := a.Issue(ctx, u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Verify validates signature and expiry, then requires the token to still be
// on the user's active list and the user to still exist. All failures
// collapse to ErrNotAuthorized.
func (a *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ParseJWT(a.secret, token)
	if err != nil {
		return nil, ErrNotAuthorized
	}
	live, err := a.sessions.Exists(ctx, claims.UserID, utils.HashToken(token))
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrNotAuthorized
	}
	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotAuthorized
	}
	return u, nil
}

// Logout revokes exactly the presented token; other sessions for the same
// user stay valid.
func (a *AuthService) Logout(ctx context.Context, userID, token string) error {
	return a.sessions.Delete(ctx, userID, utils.HashToken(token))
}
