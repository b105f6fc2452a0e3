package integrity

import (
	"context"
	"testing"

	"loot-splitter/core/database"
	"loot-splitter/core/pricing"
	"loot-splitter/core/storage/mocks"
	"loot-splitter/feature/integrity/checks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	testBucket = "test-bucket"
	testObject = "pricing/prices.yaml"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func defaultCache(t *testing.T) *pricing.Cache {
	table, err := pricing.Default()
	require.NoError(t, err)
	return pricing.NewStaticCache(table)
}

func TestService_Report(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.Listing())

	db, sqlMock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("name", "varchar(128)", "NO", "UNI", nil, "").
		AddRow("price", "bigint", "NO", "", "0", "")
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `item_prices`").WillReturnRows(rows)

	svc := NewService(mockClient, testBucket, testObject, db, defaultCache(t), zap.NewNop())
	report := svc.Report(context.Background())

	require.Contains(t, report, "prices")
	require.Contains(t, report, "storage")
	require.Contains(t, report, "schema")

	prices, ok := report["prices"].(*checks.PriceReport)
	require.True(t, ok)
	assert.Empty(t, prices.Missing)

	stored, ok := report["storage"].(*checks.ObjectReport)
	require.True(t, ok)
	assert.False(t, stored.Exists)

	schema, ok := report["schema"].(*checks.SchemaReport)
	require.True(t, ok)
	assert.True(t, schema.Matched)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_ReportWithoutBackends(t *testing.T) {
	svc := NewService(nil, "", "", nil, defaultCache(t), zap.NewNop())
	report := svc.Report(context.Background())

	assert.Equal(t, "error", report["storage"].(map[string]interface{})["status"])
	assert.Equal(t, "error", report["schema"].(map[string]interface{})["status"])
	_, ok := report["prices"].(*checks.PriceReport)
	assert.True(t, ok)
}

func TestService_FixStorage(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	mockClient.On("PutObject", mock.Anything, testBucket, testObject, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(mockClient, testBucket, testObject, nil, defaultCache(t), zap.NewNop())
	require.NoError(t, svc.FixStorage(context.Background()))
	mockClient.AssertExpectations(t)
}

func TestService_FixSchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	svc := NewService(nil, "", "", db, defaultCache(t), zap.NewNop())

	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.False(t, report.Matched)

	n, err := svc.FixSchema(context.Background())
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	report, err = svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, report.Matched)

	table, err := pricing.NewDBSource(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, n, table.Len())
}
