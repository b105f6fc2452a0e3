package cmd

import (
	"context"
	"fmt"

	"loot-splitter/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the price table backends",
	Long:  `Checks the served price table, the stored price object and the item_prices table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// pricesCheckCmd represents the integrity prices command
var pricesCheckCmd = &cobra.Command{
	Use:   "prices",
	Short: "Compare the served price table with the built-in one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// storageCheckCmd represents the integrity storage command
var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the stored price object",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// schemaCheckCmd represents the integrity schema command
var schemaCheckCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and fix the item_prices table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(pricesCheckCmd, storageCheckCmd, schemaCheckCmd)

	storageCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Upload the built-in table if the object is missing")
	schemaCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create and seed the item_prices table")
}

func runIntegrityChecks(ctx context.Context, runPrices, runStorage, runSchema bool) error {
	rt, err := loadRuntime(runSchema)
	if err != nil {
		return err
	}
	logg := rt.logger
	defer logg.Sync()

	svc := integrity.NewService(rt.store, rt.cfg.Storage.Bucket, rt.cfg.Pricing.Object, rt.db, rt.prices, logg)
	failed := false

	if runPrices {
		logg.Info("Checking price table...", zap.String("source", rt.prices.SourceName()))
		report, err := svc.CheckPrices(ctx)
		switch {
		case err != nil:
			logg.Error("Price check failed", zap.Error(err))
			failed = true
		case len(report.Missing) == 0 && len(report.Changed) == 0:
			logg.Info("Price table matches the built-in table.", zap.Int("items", report.Count))
		default:
			logg.Warn("Price table differs from the built-in table",
				zap.Int("items", report.Count),
				zap.Strings("missing", report.Missing),
				zap.Strings("changed", report.Changed))
		}
	}

	if runStorage {
		logg.Info("Checking stored price object...", zap.String("object", rt.cfg.Pricing.Object))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			logg.Error("Storage check failed", zap.Error(err))
			failed = true
		} else if report.Exists {
			logg.Info("Price object is present.", zap.Int64("size", report.Size))
		} else {
			logg.Warn("Price object missing", zap.String("bucket", report.Bucket), zap.String("object", report.Object))
			if fixFlag {
				if err := svc.FixStorage(ctx); err != nil {
					return fmt.Errorf("failed to upload price table: %w", err)
				}
				logg.Info("Price object uploaded.")
			} else {
				logg.Info("Run with --fix to upload the built-in table.")
			}
		}
	}

	if runSchema {
		logg.Info("Checking item_prices schema...")
		report, err := svc.CheckSchema()
		switch {
		case err != nil:
			logg.Error("Schema check failed", zap.Error(err))
			failed = true
		case report.Matched:
			logg.Info("Schema matches the item_prices model.")
		default:
			for table, tbl := range report.Tables {
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
			if fixFlag {
				if _, err := svc.FixSchema(ctx); err != nil {
					return err
				}
			} else {
				logg.Info("Run with --fix to create and seed the table.")
			}
		}
	}

	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
