package khandan

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sdpjss/community-registry-backend/internal/apperror"
)

func setupKhandan(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Khandan{}))
	return NewService(NewRepository(db)), db
}

func TestKhandanCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := setupKhandan(t)

	_, err := svc.Create(context.Background(), Input{Name: "Sharma Khandan"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Input{Name: "Sharma Khandan"})
	require.True(t, apperror.IsKind(err, apperror.KindStateConflict))
}

func TestKhandanMonthlyCounts(t *testing.T) {
	svc, db := setupKhandan(t)

	year := time.Now().Year() - 1
	rows := []Khandan{
		{Name: "K1", IsActive: true, CreatedAt: time.Date(year, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{Name: "K2", IsActive: true, CreatedAt: time.Date(year, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{Name: "K3", IsActive: true, CreatedAt: time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "K4", IsActive: true, CreatedAt: time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	counts, total, err := svc.MonthlyCounts(context.Background(), year)
	require.NoError(t, err)
	require.Len(t, counts, 12)
	require.Equal(t, 3, total)
	require.Equal(t, MonthlyCount{Month: "March", Count: 2}, counts[2])
	require.Equal(t, MonthlyCount{Month: "November", Count: 1}, counts[10])
	require.Equal(t, 0, counts[0].Count)
}
