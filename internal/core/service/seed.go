package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
)

// SeedAccount describes a default account provisioned at start-up.
type SeedAccount struct {
	Username string
	// Password is generated and logged once when empty.
	Password string
	Role     domain.Role
}

// SeedAccounts inserts each account whose username is not yet present.
// Existing accounts, including their passwords, are left untouched.
// It returns the usernames that were created.
func SeedAccounts(ctx context.Context, repo ports.AccountRepository, seeds []SeedAccount, log zerolog.Logger) ([]string, error) {
	var created []string

	for _, seed := range seeds {
		if seed.Username == "" {
			continue
		}
		if !seed.Role.Valid() {
			return created, fmt.Errorf("seed %q: unknown role %q", seed.Username, seed.Role)
		}

		_, err := repo.FindByUsername(ctx, seed.Username)
		if err == nil {
			log.Debug().Str("username", seed.Username).Msg("seed account already present")
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return created, fmt.Errorf("seed %q: %w", seed.Username, err)
		}

		password := seed.Password
		if password == "" {
			password, err = randomPassword()
			if err != nil {
				return created, fmt.Errorf("seed %q: %w", seed.Username, err)
			}
			log.Warn().
				Str("username", seed.Username).
				Str("password", password).
				Msg("generated initial password for seeded account; change it after first login")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return created, err
		}

		_, err = repo.Create(ctx, &domain.Account{
			Username:     seed.Username,
			PasswordHash: string(hash),
			Role:         seed.Role,
			CreatedAt:    time.Now().UTC(),
		})
		if errors.Is(err, domain.ErrUserExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", seed.Username, err)
		}

		log.Info().Str("username", seed.Username).Str("role", string(seed.Role)).Msg("seeded account")
		created = append(created, seed.Username)
	}

	return created, nil
}

func randomPassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
