package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sdpjss/community-registry-backend/config"
	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/internal/courier"
	"github.com/sdpjss/community-registry-backend/internal/khandan"
)

// memoryCodeStore is a CodeStore over a plain map with wall-clock TTLs.
type memoryCodeStore struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func newMemoryCodeStore() *memoryCodeStore {
	return &memoryCodeStore{values: map[string]string{}, expires: map[string]time.Time{}}
}

func (m *memoryCodeStore) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.expires[key] = time.Now().Add(ttl)
	return nil
}

func (m *memoryCodeStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.expires[key]; ok && time.Now().After(exp) {
		delete(m.values, key)
		delete(m.expires, key)
	}
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

func (m *memoryCodeStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.expires, key)
	return nil
}

func (m *memoryCodeStore) TTL(key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.expires[key]
	if !ok {
		return 0, fmt.Errorf("key not found: %s", key)
	}
	return time.Until(exp), nil
}

func (m *memoryCodeStore) Incr(key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	fmt.Sscanf(m.values[key], "%d", &n)
	n++
	m.values[key] = fmt.Sprintf("%d", n)
	if _, ok := m.expires[key]; !ok {
		m.expires[key] = time.Now().Add(time.Hour)
	}
	return n, nil
}

// sentCode captures the codes the service tries to deliver.
type sentCode struct {
	email, username, code string
}

type testEnv struct {
	svc     Service
	repo    Repository
	codes   *memoryCodeStore
	sent    []sentCode
	sendErr error
	khandan *khandan.Khandan
}

func setupAuth(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&khandan.Khandan{}, &User{}))

	k := &khandan.Khandan{Name: "Sharma Khandan", IsActive: true}
	require.NoError(t, db.Create(k).Error)

	env := &testEnv{
		repo:    NewRepository(db),
		codes:   newMemoryCodeStore(),
		khandan: k,
	}
	cfg := &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  24,
		JWTRefreshTTLHours: 168,
		AdminEmail:         "admin@sdpjss.org",
		AdminPassword:      "admin-pass",
	}
	env.svc = NewService(env.repo, khandan.NewRepository(db), cfg, env.codes, func(email, username, code string) error {
		if env.sendErr != nil {
			return env.sendErr
		}
		env.sent = append(env.sent, sentCode{email, username, code})
		return nil
	})
	return env
}

func registerInput(khandanID uint, username string, father FatherRef) RegisterInput {
	return RegisterInput{
		Username:     username,
		Password:     "secret-pass-1",
		FullName:     "Ramesh Kumar",
		Email:        username + "@example.com",
		Mobile:       "9876543210",
		KhandanID:    khandanID,
		Father:       father,
		CurrLocation: courier.RegionInManpur,
	}
}

func approve(t *testing.T, env *testEnv, userID uint) {
	t.Helper()
	require.NoError(t, env.repo.UpdateApproval(context.Background(), userID, true))
}

func TestRegisterEldestInEmptyKhandan(t *testing.T) {
	env := setupAuth(t)

	user, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)
	require.True(t, user.IsEldest)
	// Eldest sentinel: father id self-references the khandan.
	require.Equal(t, env.khandan.ID, user.FatherID)
	require.False(t, user.IsApproved)
}

func TestRegisterEldestRejectedWhenKhandanPopulated(t *testing.T) {
	env := setupAuth(t)

	_, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	_, err = env.svc.Register(context.Background(), registerInput(env.khandan.ID, "suresh", EldestFather()))
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestRegisterChildOfSameKhandan(t *testing.T) {
	env := setupAuth(t)

	eldest, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	child, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "suresh", ChildOf(eldest.ID)))
	require.NoError(t, err)
	require.Equal(t, eldest.ID, child.FatherID)
	require.False(t, child.IsEldest)
}

func TestRegisterRejectsForeignKhandanFather(t *testing.T) {
	env := setupAuth(t)

	eldest, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	other := &khandan.Khandan{Name: "Gupta Khandan", IsActive: true}
	require.NoError(t, env.repo.(*repository).db.Create(other).Error)

	_, err = env.svc.Register(context.Background(), registerInput(other.ID, "mahesh", ChildOf(eldest.ID)))
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestRegisterRejectsUnknownKhandan(t *testing.T) {
	env := setupAuth(t)

	_, err := env.svc.Register(context.Background(), registerInput(999, "ramesh", EldestFather()))
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	env := setupAuth(t)

	first, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	_, err = env.svc.Register(context.Background(), registerInput(env.khandan.ID, "Ramesh", ChildOf(first.ID)))
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestLoginRequiresApproval(t *testing.T) {
	env := setupAuth(t)

	user, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)

	_, _, err = env.svc.Login(context.Background(), "ramesh", "secret-pass-1")
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))

	approve(t, env, user.ID)

	tokens, logged, err := env.svc.Login(context.Background(), "ramesh", "secret-pass-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, user.ID, logged.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := setupAuth(t)

	user, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)
	approve(t, env, user.ID)

	_, _, err = env.svc.Login(context.Background(), "ramesh", "wrong-pass")
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))
}

func TestRefreshRejectsStaleTokenVersion(t *testing.T) {
	env := setupAuth(t)

	user, err := env.svc.Register(context.Background(), registerInput(env.khandan.ID, "ramesh", EldestFather()))
	require.NoError(t, err)
	approve(t, env, user.ID)

	tokens, _, err := env.svc.Login(context.Background(), "ramesh", "secret-pass-1")
	require.NoError(t, err)

	// Before the credential changes, refresh works.
	_, err = env.svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, env.repo.ReplacePassword(context.Background(), user.ID, "new-hash"))

	_, err = env.svc.Refresh(tokens.RefreshToken)
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))
}

func TestAdminLogin(t *testing.T) {
	env := setupAuth(t)

	token, err := env.svc.AdminLogin("admin@sdpjss.org", "admin-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = env.svc.AdminLogin("admin@sdpjss.org", "nope")
	require.True(t, apperror.IsKind(err, apperror.KindSecurity))
}
