// Package database handles database connections and schema inspection.
//
// It wraps GORM to open the target inventory database with the configured driver:
// MySQL in production or SQLite for embedded and test deployments.
//
// # Schema Inspection
//
// GetTableColumns reads the live column definitions of a table and InspectTable
// compares them against the columns a model expects. The integrity feature uses
// both to verify that every inventory table has been migrated.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	report, err := database.InspectTable(db, "dcim_site", []string{"id", "name"})
package database
