package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// TableReport is the result of comparing one table against its expected columns.
type TableReport struct {
	Table   string   `json:"table"`
	Exists  bool     `json:"exists"`
	Missing []string `json:"missing,omitempty"`
}

// OK reports whether the table exists with every expected column.
func (r TableReport) OK() bool {
	return r.Exists && len(r.Missing) == 0
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string `gorm:"column:dflt_value"`
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			null := "YES"
			if col.Notnull == 1 {
				null = "NO"
			}
			key := ""
			if col.Pk > 0 {
				key = "PRI"
			}
			columns = append(columns, ColumnInfo{
				Field:   strings.ToLower(col.Name),
				Type:    strings.ToLower(col.Type),
				Null:    null,
				Key:     key,
				Default: col.DefaultVal,
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// InspectTable compares a table against the columns it is expected to carry.
// A table without columns is reported as not existing.
func InspectTable(db *gorm.DB, tableName string, expected []string) (TableReport, error) {
	report := TableReport{Table: tableName}
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return report, err
	}
	if len(columns) == 0 {
		report.Missing = expected
		return report, nil
	}
	report.Exists = true

	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col.Field] = true
	}
	for _, name := range expected {
		if !present[strings.ToLower(name)] {
			report.Missing = append(report.Missing, name)
		}
	}
	return report, nil
}
