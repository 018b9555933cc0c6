package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
	"github.com/rpdbs/research-databank/internal/pkg/metrics"
)

// publicUsername is the display name of password-less viewer sessions.
const publicUsername = "public"

// AuthConfig controls token issuance.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AllowPublicView enables password-less viewer sessions. Off by default.
	AllowPublicView bool
}

// AuthService implements registration, login, logout and public viewer sessions.
type AuthService struct {
	repo     ports.AccountRepository
	sessions ports.SessionStore
	cfg      AuthConfig
	log      zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, sessions ports.SessionStore, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, cfg: cfg, log: log}
}

// Register creates a user-role account. Other roles are only provisioned by seeding.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Int64("account_id", created.ID).Msg("account registered")
	return created, nil
}

// Login verifies the credentials and opens a session. Unknown usernames and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison.
			_ = bcrypt.CompareHashAndPassword(placeholderHash(), []byte(password))
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.openSession(ctx, domain.Session{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", account.Username).Str("role", string(account.Role)).Msg("login")
	return token, account, nil
}

// PublicView opens a viewer session without a password.
func (s *AuthService) PublicView(ctx context.Context) (string, *domain.Session, error) {
	if !s.cfg.AllowPublicView {
		return "", nil, domain.ErrPublicViewDisabled
	}

	token, session, err := s.openSession(ctx, domain.Session{
		Username: publicUsername,
		Role:     domain.RoleViewer,
		Public:   true,
	})
	if err != nil {
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("public").Inc()
	return token, session, nil
}

// Logout removes the session record; the token stops being accepted at once.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrSessionNotFound
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) openSession(ctx context.Context, session domain.Session) (string, *domain.Session, error) {
	session.ID = uuid.NewString()

	if err := s.sessions.Save(ctx, session, s.cfg.TokenTTL); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return "", nil, err
	}
	return token, &session, nil
}

func (s *AuthService) generateToken(session domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":      session.ID,
		"sub":      strconv.FormatInt(session.AccountID, 10),
		"username": session.Username,
		"role":     string(session.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

var (
	placeholderOnce sync.Once
	placeholder     []byte
)

func placeholderHash() []byte {
	placeholderOnce.Do(func() {
		placeholder, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.DefaultCost)
	})
	return placeholder
}
