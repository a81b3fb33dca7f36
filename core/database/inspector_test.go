package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT NOT NULL, description TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "text", colMap["name"].Type)
	assert.Equal(t, "NO", colMap["name"].Null)
	assert.Equal(t, "YES", colMap["description"].Null)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestInspectTable(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE dcim_site (id INTEGER PRIMARY KEY, natural_key TEXT, name TEXT)").Error)

	tests := []struct {
		name     string
		table    string
		expected []string
		exists   bool
		missing  []string
	}{
		{"complete", "dcim_site", []string{"id", "natural_key", "name"}, true, nil},
		{"missing column", "dcim_site", []string{"id", "name", "facility"}, true, []string{"facility"}},
		{"missing table", "dcim_rack", []string{"id", "name"}, false, []string{"id", "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := InspectTable(db, tt.table, tt.expected)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, report.Exists)
			assert.Equal(t, tt.missing, report.Missing)
			assert.Equal(t, tt.exists && len(tt.missing) == 0, report.OK())
		})
	}
}
