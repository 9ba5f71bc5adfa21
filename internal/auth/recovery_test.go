package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

func startRecovery(t *testing.T, env *testEnv) string {
	t.Helper()
	_, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	require.NoError(t, env.svc.RequestRecoveryCode(context.Background(), "ramesh"))
	require.Len(t, env.sent, 1)
	require.Equal(t, "ramesh@example.com", env.sent[0].email)
	require.Len(t, env.sent[0].code, 6)
	return env.sent[0].code
}

func TestRecoveryFullFlow(t *testing.T) {
	env := setupAuth(t)
	code := startRecovery(t, env)

	require.NoError(t, env.svc.VerifyRecoveryCode(context.Background(), "ramesh", code))
	require.NoError(t, env.svc.CommitNewPassword(context.Background(), "ramesh", "brand-new-pass"))

	user, err := env.repo.FindByUsername(context.Background(), "ramesh")
	require.NoError(t, err)
	approve(t, env, user.ID)

	_, _, err = env.svc.Login(context.Background(), "ramesh", "brand-new-pass")
	require.NoError(t, err)
	_, _, err = env.svc.Login(context.Background(), "ramesh", "secret-pass-1")
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))
}

func TestRecoveryCommitInvalidatesOldSessions(t *testing.T) {
	env := setupAuth(t)
	code := startRecovery(t, env)

	user, err := env.repo.FindByUsername(context.Background(), "ramesh")
	require.NoError(t, err)
	approve(t, env, user.ID)

	tokens, _, err := env.svc.Login(context.Background(), "ramesh", "secret-pass-1")
	require.NoError(t, err)

	require.NoError(t, env.svc.VerifyRecoveryCode(context.Background(), "ramesh", code))
	require.NoError(t, env.svc.CommitNewPassword(context.Background(), "ramesh", "brand-new-pass"))

	_, err = env.svc.Refresh(tokens.RefreshToken)
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))
}

func TestRecoveryRequestRevealsUnknownUsername(t *testing.T) {
	env := setupAuth(t)

	err := env.svc.RequestRecoveryCode(context.Background(), "nobody")
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRecoveryRequestFailsWhenEmailUndeliverable(t *testing.T) {
	env := setupAuth(t)
	_, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	env.sendErr = errors.New("smtp down")
	err = env.svc.RequestRecoveryCode(context.Background(), "ramesh")
	require.True(t, apperror.IsKind(err, apperror.KindExternal))

	// The undelivered code must not be usable.
	err = env.svc.VerifyRecoveryCode(context.Background(), "ramesh", "123456")
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestVerifyWithoutActiveRequest(t *testing.T) {
	env := setupAuth(t)
	_, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	err = env.svc.VerifyRecoveryCode(context.Background(), "ramesh", "123456")
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestVerifyFailsAfterExpiry(t *testing.T) {
	env := setupAuth(t)
	code := startRecovery(t, env)

	// Force the code past its TTL.
	env.codes.mu.Lock()
	env.codes.expires[recoveryCodeKey("ramesh")] = time.Now().Add(-time.Second)
	env.codes.mu.Unlock()

	err := env.svc.VerifyRecoveryCode(context.Background(), "ramesh", code)
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	env := setupAuth(t)
	code := startRecovery(t, env)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := env.svc.VerifyRecoveryCode(context.Background(), "ramesh", wrong)
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))

	// The right code still works after a single miss.
	require.NoError(t, env.svc.VerifyRecoveryCode(context.Background(), "ramesh", code))
}

func TestVerifyBurnsCodeAfterTooManyAttempts(t *testing.T) {
	env := setupAuth(t)
	code := startRecovery(t, env)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < recoveryMaxAttempts; i++ {
		err := env.svc.VerifyRecoveryCode(context.Background(), "ramesh", wrong)
		require.True(t, apperror.IsKind(err, apperror.KindSecurity))
	}

	// Attempt cap exceeded: even the correct code is refused now.
	err := env.svc.VerifyRecoveryCode(context.Background(), "ramesh", code)
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestCommitRequiresVerification(t *testing.T) {
	env := setupAuth(t)
	startRecovery(t, env)

	err := env.svc.CommitNewPassword(context.Background(), "ramesh", "brand-new-pass")
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestCommitRejectsShortPassword(t *testing.T) {
	env := setupAuth(t)
	code := startRecovery(t, env)

	require.NoError(t, env.svc.VerifyRecoveryCode(context.Background(), "ramesh", code))

	err := env.svc.CommitNewPassword(context.Background(), "ramesh", "short")
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestNewRequestSupersedesOldSession(t *testing.T) {
	env := setupAuth(t)
	first := startRecovery(t, env)

	require.NoError(t, env.svc.VerifyRecoveryCode(context.Background(), "ramesh", first))

	// A fresh request discards the verified state and the old code.
	require.NoError(t, env.svc.RequestRecoveryCode(context.Background(), "ramesh"))
	require.Len(t, env.sent, 2)
	second := env.sent[1].code

	err := env.svc.CommitNewPassword(context.Background(), "ramesh", "brand-new-pass")
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))

	if first != second {
		err = env.svc.VerifyRecoveryCode(context.Background(), "ramesh", first)
		require.True(t, apperror.IsKind(err, apperror.KindSecurity))
	}
	require.NoError(t, env.svc.VerifyRecoveryCode(context.Background(), "ramesh", second))
	require.NoError(t, env.svc.CommitNewPassword(context.Background(), "ramesh", "brand-new-pass"))
}
