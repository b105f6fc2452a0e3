package cmd

import (
	"fmt"
	"text/tabwriter"

	"loot-splitter/core/config"
	"loot-splitter/core/pricing"
	"loot-splitter/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var priceSource string

func withPriceSource(cfg *config.Config) {
	if priceSource != "" {
		cfg.Pricing.Source = priceSource
	}
}

// pricesCmd represents the prices command
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Print the reference price table",
	Long:  `Loads the price table from the configured source (or --source) and prints every item.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(false, withPriceSource)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		table, err := rt.prices.Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load price table: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Item\tPrice")
		for _, item := range table.Items() {
			fmt.Fprintf(tw, "%s\t%s\n", item.Name, humanize.Comma(item.Price))
		}
		tw.Flush()

		rt.logger.Info("Price table loaded", zap.String("source", rt.prices.SourceName()), zap.Int("items", table.Len()))
		return nil
	},
}

// pricesSeedCmd represents the prices seed command
var pricesSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in price table into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if rt.db == nil {
			return fmt.Errorf("database connection required")
		}
		table, err := pricing.Default()
		if err != nil {
			return err
		}
		n, err := pricing.Seed(cmd.Context(), rt.db, table)
		if err != nil {
			return err
		}
		rt.logger.Info("Seeded item_prices", zap.Int("items", n))
		return nil
	},
}

// pricesPushCmd represents the prices push command
var pricesPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the price table to object storage",
	Long:  `Uploads the table loaded from --source (default: the built-in table) as the configured storage object.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if priceSource == "" {
			priceSource = pricing.SourceEmbedded
		}
		rt, err := loadRuntime(false, withPriceSource)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if rt.store == nil {
			return fmt.Errorf("storage client required")
		}
		table, err := rt.prices.Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load price table: %w", err)
		}
		object := rt.cfg.Pricing.Object
		if err := storage.EnsureBucket(cmd.Context(), rt.store, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
			return err
		}
		if err := pricing.Publish(cmd.Context(), rt.store, rt.cfg.Storage.Bucket, object, table); err != nil {
			return err
		}
		rt.logger.Info("Uploaded price table",
			zap.String("bucket", rt.cfg.Storage.Bucket),
			zap.String("object", object),
			zap.Int("items", table.Len()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pricesCmd)
	pricesCmd.AddCommand(pricesSeedCmd, pricesPushCmd)

	pricesCmd.PersistentFlags().StringVar(&priceSource, "source", "", "Price source override (embedded, file, database, storage)")
}
