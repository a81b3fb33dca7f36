package checks

import (
	"fmt"
	"sort"

	"inventory-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Driver  string                          `json:"driver"`
	Matched bool                            `json:"matched"`
	Tables  map[string]database.TableReport `json:"tables"`
	Errors  []string                        `json:"errors"`
}

// CheckSchema compares the live database against the expected columns of every table.
func CheckSchema(db *gorm.DB, expected map[string][]string) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]database.TableReport, len(expected)),
		Errors:  []string{},
	}

	tables := make([]string, 0, len(expected))
	for table := range expected {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		tbl, err := database.InspectTable(db, table, expected[table])
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		if !tbl.OK() {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
