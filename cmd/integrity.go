package cmd

import (
	"context"
	"fmt"
	"os"

	"inventory-sync/core/database"
	"inventory-sync/core/storage"
	"inventory-sync/feature/integrity"
	"inventory-sync/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the storage bucket, the target schema and the Device42 source",
	Long:  `Runs every integrity check. Use a subcommand with --fix to repair storage prefixes or migrate the schema.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), false, false, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the bucket and its prefixes",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and migrate the target database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// sourceCmd represents the integrity source command
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Check that the Device42 source is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, schemaCmd, sourceCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing prefixes")
	schemaCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate missing tables and columns")
	sourceCmd.Flags().StringVar(&sourceKind, "source", "", "Device42 source: api or export (default from device42.source)")
}

func runIntegrityChecks(ctx context.Context, onlyStorage, onlySchema, onlySource bool) {
	cfg, logg, err := bootstrap()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logg.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		logg = logg.With(zap.String("target", cfg.Database.Name))
	}

	var src checks.Pinger
	if s, err := newSource(cfg, client, sourceKind); err != nil {
		logg.Warn("Device42 source not configured", zap.Error(err))
	} else {
		src = s
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Storage.Prefixes(), logg, db, src)
	all := !onlyStorage && !onlySchema && !onlySource

	if all || onlyStorage {
		if onlyStorage && fixFlag {
			created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
			if err != nil {
				logg.Fatal("Failed to create bucket", zap.Error(err))
			}
			if created {
				logg.Info("Bucket created", zap.String("bucket", cfg.Storage.Bucket))
			}
		}

		logg.Info("Checking storage prefixes...", zap.String("bucket", cfg.Storage.Bucket))
		missing, err := svc.CheckStorage(ctx)
		if err != nil {
			logg.Fatal("Storage check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Storage is intact.")
		} else {
			logg.Warn("Missing prefixes detected", zap.Strings("missing", missing))

			if onlyStorage && fixFlag {
				logg.Info("Creating missing prefixes...")
				if err := svc.FixStorage(ctx, missing); err != nil {
					logg.Fatal("Failed to fix storage", zap.Error(err))
				}
				logg.Info("Storage fixed successfully.")
			} else if onlyStorage {
				logg.Info("Run with --fix to create missing prefixes.")
			}
		}
	}

	if all || onlySchema {
		if onlySchema && fixFlag {
			logg.Info("Migrating target schema...")
			if err := svc.FixSchema(ctx); err != nil {
				logg.Fatal("Schema migration failed", zap.Error(err))
			}
		}

		logg.Info("Checking target schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Target schema matches the inventory models.", zap.String("driver", report.Driver))
		} else {
			logg.Warn("Target schema mismatches found", zap.String("driver", report.Driver))
			for table, tbl := range report.Tables {
				switch {
				case !tbl.Exists:
					logg.Warn("Missing Table", zap.String("table", table))
				case len(tbl.Missing) > 0:
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.Missing))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
			if onlySchema {
				logg.Info("Run with --fix to migrate the schema.")
			}
		}
	}

	if all || onlySource {
		logg.Info("Checking Device42 source...")
		report := svc.CheckSource(ctx)
		if report.Reachable {
			logg.Info("Device42 source is reachable.", zap.Int64("latency_ms", report.LatencyMs))
		} else {
			logg.Warn("Device42 source is unreachable", zap.String("error", report.Error))
		}
	}
}
