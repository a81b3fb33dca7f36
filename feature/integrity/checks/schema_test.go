package checks

import (
	"testing"

	"inventory-sync/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, map[string][]string{"dcim_site": {"id"}})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE dcim_site (id INTEGER PRIMARY KEY, natural_key TEXT, name TEXT)").Error)
	require.NoError(t, db.Exec("CREATE TABLE dcim_rack (id INTEGER PRIMARY KEY, natural_key TEXT)").Error)

	t.Run("Matched", func(t *testing.T) {
		report, err := CheckSchema(db, map[string][]string{
			"dcim_site": {"id", "natural_key", "name"},
			"dcim_rack": {"id", "natural_key"},
		})
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "sqlite", report.Driver)
		assert.Len(t, report.Tables, 2)
		assert.Empty(t, report.Errors)
	})

	t.Run("Drift", func(t *testing.T) {
		report, err := CheckSchema(db, map[string][]string{
			"dcim_site":   {"id", "natural_key", "name", "facility"},
			"dcim_device": {"id"},
		})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, []string{"facility"}, report.Tables["dcim_site"].Missing)
		assert.False(t, report.Tables["dcim_device"].Exists)
	})
}

func TestCheckSchema_InspectFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `dcim_site`").
		WillReturnError(assert.AnError)

	report, err := CheckSchema(db, map[string][]string{"dcim_site": {"id"}})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "dcim_site")
}
