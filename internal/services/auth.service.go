package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/branch-backoffice/internal/broadcast"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("error notfound")
)

const (
	sessionKeyPrefix  = "session:"
	userTokensPrefix  = "user_tokens:"
	RedirectAdminPath = "/admin"
	RedirectUserPath  = "/dashboard"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetOnline(ctx context.Context, id int64, online bool) error
	ListIDs(ctx context.Context) ([]int64, error)
	List(ctx context.Context) ([]*model.User, error)
}

// TokenStore keeps opaque session tokens in Redis. Each token maps to its
// user id with a TTL, and every live token is also tracked in a per-user
// set so logout can revoke all of a user's sessions at once.
type TokenStore struct {
	adapter redis.RedisAdapter
	ttl     time.Duration
}

func NewTokenStore(adapter redis.RedisAdapter, ttl time.Duration) *TokenStore {
	return &TokenStore{adapter: adapter, ttl: ttl}
}

func (s *TokenStore) Issue(userID int64) (string, error) {
	token := uuid.NewString()
	id := strconv.FormatInt(userID, 10)

	if err := s.adapter.Set(sessionKeyPrefix+token, []byte(id), s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := s.adapter.SAdd(userTokensPrefix+id, token); err != nil {
		return "", fmt.Errorf("track session: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Resolve(token string) (int64, error) {
	raw, err := s.adapter.Get(sessionKeyPrefix + token)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// RevokeAll drops every session the user holds, not just the one that
// initiated the logout.
func (s *TokenStore) RevokeAll(userID int64) error {
	id := strconv.FormatInt(userID, 10)
	tokens, err := s.adapter.SMembers(userTokensPrefix + id)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := s.adapter.Del(sessionKeyPrefix + token); err != nil {
			return err
		}
	}
	return s.adapter.Del(userTokensPrefix + id)
}

type AuthService struct {
	userRepo  UserRepository
	tokens    *TokenStore
	publisher broadcast.Publisher
}

func NewAuthService(userRepo UserRepository, tokens *TokenStore, publisher broadcast.Publisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		publisher: publisher,
	}
}

// Register hashes the password and stores the account. Admin-gated at the
// handler layer.
func (s *AuthService) Register(ctx context.Context, p model.UserCreateRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.Create(ctx, &model.User{
		Name:     p.Name,
		Email:    p.Email,
		Password: string(hash),
		Usertype: p.Usertype,
		BranchID: p.BranchID,
	})
}

// Login verifies credentials, issues a session token, flips the persisted
// presence flag and tells the dashboards. A failed broadcast never fails
// the login.
func (s *AuthService) Login(ctx context.Context, p model.LoginRequest) (*model.LoginResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(p.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetOnline(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("set online: %w", err)
	}
	user.IsOnline = true

	s.publishStatus(ctx, user.ID, true)

	redirect := RedirectUserPath
	if user.Usertype == model.RoleAdmin {
		redirect = RedirectAdminPath
	}

	return &model.LoginResult{
		User:     user,
		Token:    token,
		Redirect: redirect,
	}, nil
}

// Logout resolves the token itself rather than relying on an
// authenticated principal: the sessions of a user whose row has vanished
// must still be torn down. For such a user the offline flip and the
// broadcast are skipped.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, err := s.tokens.Resolve(token)
	if err != nil {
		return err
	}

	if err := s.tokens.RevokeAll(userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	if err := s.userRepo.SetOnline(ctx, userID, false); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("set offline: %w", err)
	}

	s.publishStatus(ctx, userID, false)
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.tokens.Resolve(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *AuthService) publishStatus(ctx context.Context, userID int64, online bool) {
	err := s.publisher.Publish(ctx, broadcast.ChannelUserStatus, broadcast.EventUserStatusUpdated, broadcast.UserStatusPayload{
		UserID: userID,
		Status: online,
	})
	if err != nil {
		logger.Error("user status broadcast failed", "userId", userID, "online", online, "error", err)
	}
}
