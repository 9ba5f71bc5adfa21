package courier

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

func setupCourier(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ChargeRule{}))
	return NewService(NewRepository(db))
}

func TestChargeRuleRejectsHomeRegion(t *testing.T) {
	svc := setupCourier(t)

	// in_manpur always ships free, no rule may price it.
	_, err := svc.CreateRule(context.Background(), RegionInManpur, 50)
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestChargeRuleRejectsDuplicateRegion(t *testing.T) {
	svc := setupCourier(t)

	_, err := svc.CreateRule(context.Background(), RegionOutsideIndia, 300)
	require.NoError(t, err)

	_, err = svc.CreateRule(context.Background(), RegionOutsideIndia, 500)
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestChargeRuleRejectsNegativeAmount(t *testing.T) {
	svc := setupCourier(t)

	_, err := svc.CreateRule(context.Background(), RegionInBiharOutsideGaya, -10)
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}
