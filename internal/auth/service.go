package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sdpjss/community-registry-backend/config"
	"github.com/sdpjss/community-registry-backend/internal/apperror"
	"github.com/sdpjss/community-registry-backend/internal/courier"
	"github.com/sdpjss/community-registry-backend/internal/khandan"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *User, error)
	AdminLogin(email, password string) (string, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	ListKhandanMembers(ctx context.Context, khandanID uint) ([]User, error)
	ListUsers(ctx context.Context, search string, page, limit int) ([]User, int64, error)
	SetApproval(ctx context.Context, userID uint, approved bool) error
	MonthlyCounts(ctx context.Context, year int) ([]khandan.MonthlyCount, int, error)
	AvailableYears(ctx context.Context) ([]int, error)

	// Recovery workflow
	RequestRecoveryCode(ctx context.Context, username string) error
	VerifyRecoveryCode(ctx context.Context, username, code string) error
	CommitNewPassword(ctx context.Context, username, newPassword string) error
}

// CodeStore is the ephemeral store behind the recovery workflow (Redis in
// production, an in-memory map in tests).
type CodeStore interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	TTL(key string) (time.Duration, error)
	Incr(key string) (int64, error)
}

// SendCodeFunc delivers a recovery code out of band.
type SendCodeFunc func(email, username, code string) error

type service struct {
	repo          Repository
	khandans      khandan.Repository
	codes         CodeStore
	sendCode      SendCodeFunc
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	adminEmail    string
	adminPassword string
}

func NewService(r Repository, khandans khandan.Repository, cfg *config.Config, codes CodeStore, sendCode SendCodeFunc) Service {
	return &service{
		repo:          r,
		khandans:      khandans,
		codes:         codes,
		sendCode:      sendCode,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
		adminEmail:    cfg.AdminEmail,
		adminPassword: cfg.AdminPassword,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Username     string
	Password     string
	FullName     string
	Gender       string
	DOB          string
	Email        string
	Mobile       string
	KhandanID    uint
	Father       FatherRef
	Street       string
	City         string
	State        string
	Pincode      string
	CurrLocation courier.Region
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if len(in.Password) < 8 {
		return nil, apperror.Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperror.Validation("full name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, apperror.Validation("a valid email address is required")
	}
	if !in.CurrLocation.Valid() {
		return nil, apperror.Validation("invalid current location")
	}

	mobile, err := cleanPhone(in.Mobile)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, apperror.StateConflict("username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.khandans.GetByID(ctx, in.KhandanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("khandan not found")
		}
		return nil, err
	}

	if err := s.validateFather(ctx, in.KhandanID, in.Father); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Gender:       in.Gender,
		DOB:          in.DOB,
		Email:        strings.TrimSpace(in.Email),
		Mobile:       mobile,
		KhandanID:    in.KhandanID,
		FatherID:     in.Father.SentinelID(in.KhandanID),
		IsEldest:     in.Father.Eldest,
		Street:       in.Street,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		CurrLocation: in.CurrLocation,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// validateFather enforces the lineage invariant: at most the eldest member
// carries the khandan-id sentinel, and every other father link must point
// at an existing member of the same khandan.
func (s *service) validateFather(ctx context.Context, khandanID uint, father FatherRef) error {
	if father.Eldest {
		count, err := s.repo.CountInKhandan(ctx, khandanID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.StateConflict("this khandan already has members; select a father instead")
		}
		return nil
	}

	if father.MemberID == 0 {
		return apperror.Validation("father is required for non-eldest members")
	}

	ok, err := s.repo.MemberOfKhandan(ctx, father.MemberID, khandanID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Validation("selected father does not belong to this khandan")
	}
	return nil
}

// =============================
// Login / tokens
// =============================

func (s *service) Login(ctx context.Context, username, password string) (*TokenPair, *User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("couldn't find your account")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.Security("invalid credentials")
	}

	if !user.IsApproved {
		return nil, nil, apperror.StateConflict("your registration is pending approval")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

func (s *service) AdminLogin(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if s.adminEmail == "" || !emailOK || !passOK {
		return "", apperror.Security("invalid admin credentials")
	}

	claims := jwt.MapClaims{
		"is_admin": true,
		"exp":      time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"token_version": user.TokenVersion,
		"exp":           time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"token_version": user.TokenVersion,
		"exp":           time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperror.Security("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", apperror.Security("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(context.Background(), userID)
	if err != nil {
		return "", apperror.NotFound("user not found")
	}

	// A stale token version means the credential changed since issuance.
	if v, ok := claims["token_version"].(float64); !ok || uint(v) != user.TokenVersion {
		return "", apperror.Security("session expired, please log in again")
	}

	return s.generateAccessToken(user)
}

// =============================
// Directory
// =============================

func (s *service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *service) ListKhandanMembers(ctx context.Context, khandanID uint) ([]User, error) {
	return s.repo.ListByKhandan(ctx, khandanID)
}

func (s *service) ListUsers(ctx context.Context, search string, page, limit int) ([]User, int64, error) {
	return s.repo.List(ctx, search, page, limit)
}

func (s *service) SetApproval(ctx context.Context, userID uint, approved bool) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	return s.repo.UpdateApproval(ctx, userID, approved)
}

func (s *service) MonthlyCounts(ctx context.Context, year int) ([]khandan.MonthlyCount, int, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	stamps, err := s.repo.CreatedInRange(ctx, from, to)
	if err != nil {
		return nil, 0, err
	}

	perMonth := make([]int, 12)
	for _, ts := range stamps {
		perMonth[int(ts.Month())-1]++
	}

	names := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	counts := make([]khandan.MonthlyCount, 12)
	total := 0
	for i, name := range names {
		counts[i] = khandan.MonthlyCount{Month: name, Count: perMonth[i]}
		total += perMonth[i]
	}
	return counts, total, nil
}

func (s *service) AvailableYears(ctx context.Context) ([]int, error) {
	return s.repo.AvailableYears(ctx)
}

// =============================
// Helpers
// =============================

func cleanPhone(raw string) (string, error) {
	re := regexp.MustCompile(`\D`)
	cleaned := re.ReplaceAllString(raw, "")

	// Strip leading country code if present
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		cleaned = cleaned[2:]
	}

	if len(cleaned) != 10 {
		return "", errors.New("invalid phone number format")
	}
	return cleaned, nil
}
