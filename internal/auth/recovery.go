package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

const (
	recoveryCodeTTL     = 10 * time.Minute
	recoveryMaxAttempts = 5
)

func recoveryCodeKey(username string) string     { return "recovery:code:" + username }
func recoveryVerifiedKey(username string) string { return "recovery:verified:" + username }
func recoveryAttemptsKey(username string) string { return "recovery:attempts:" + username }

// RequestRecoveryCode starts a recovery session: a fresh 6-digit code is
// stored hashed with a 10-minute TTL and emailed to the account's address.
// Any earlier session for the username is discarded.
func (s *service) RequestRecoveryCode(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("no account found with this username")
		}
		return err
	}

	code, err := generateRecoveryCode()
	if err != nil {
		return err
	}

	// Start clean: a new request supersedes any in-flight session.
	_ = s.codes.Delete(recoveryVerifiedKey(username))
	_ = s.codes.Delete(recoveryAttemptsKey(username))

	if err := s.codes.Set(recoveryCodeKey(username), hashRecoveryCode(code), recoveryCodeTTL); err != nil {
		return err
	}

	if err := s.sendCode(user.Email, username, code); err != nil {
		// An undeliverable code is a dead session; don't leave it armed.
		_ = s.codes.Delete(recoveryCodeKey(username))
		return apperror.Wrap(apperror.KindExternal, "could not send recovery email", err)
	}
	return nil
}

// VerifyRecoveryCode checks the submitted code against the stored hash.
// Five wrong attempts burn the code.
func (s *service) VerifyRecoveryCode(ctx context.Context, username, code string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	storedHash, err := s.codes.Get(recoveryCodeKey(username))
	if err != nil || storedHash == "" {
		return apperror.StateConflict("no active recovery request; request a new code")
	}

	attempts, err := s.codes.Incr(recoveryAttemptsKey(username))
	if err != nil {
		return err
	}
	if attempts > recoveryMaxAttempts {
		_ = s.codes.Delete(recoveryCodeKey(username))
		_ = s.codes.Delete(recoveryAttemptsKey(username))
		return apperror.StateConflict("too many incorrect attempts; request a new code")
	}

	submitted := hashRecoveryCode(strings.TrimSpace(code))
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(storedHash)) != 1 {
		return apperror.Security("incorrect recovery code")
	}

	// Verified flag lives only as long as the code itself.
	ttl, err := s.codes.TTL(recoveryCodeKey(username))
	if err != nil || ttl <= 0 {
		ttl = recoveryCodeTTL
	}
	return s.codes.Set(recoveryVerifiedKey(username), "1", ttl)
}

// CommitNewPassword replaces the credential for a verified session and
// invalidates all outstanding tokens for the account.
func (s *service) CommitNewPassword(ctx context.Context, username, newPassword string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	verified, err := s.codes.Get(recoveryVerifiedKey(username))
	if err != nil || verified != "1" {
		return apperror.StateConflict("recovery code not verified; complete verification first")
	}

	if len(newPassword) < 8 {
		return apperror.Validation("password must be at least 8 characters")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("no account found with this username")
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.ReplacePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	_ = s.codes.Delete(recoveryCodeKey(username))
	_ = s.codes.Delete(recoveryVerifiedKey(username))
	_ = s.codes.Delete(recoveryAttemptsKey(username))
	return nil
}

func generateRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashRecoveryCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
