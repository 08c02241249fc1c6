package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"proptech-analytics/config"
	"proptech-analytics/storage"
)

// ImportCmd copies the CSV datasets into the SQL store selected by DATA_SOURCE.
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the CSV datasets into PostgreSQL or SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cmd, cfg, false)
			ctx := commandContext(cmd)

			if cfg.DataSource != "postgres" && cfg.DataSource != "sqlite" {
				return fmt.Errorf("DATA_SOURCE must be postgres or sqlite to import, got %q", cfg.DataSource)
			}
			prices, _ := cmd.Flags().GetString("prices")
			rents, _ := cmd.Flags().GetString("rents")
			if prices == "" {
				prices = cfg.PriceCSVPath
			}
			if rents == "" {
				rents = cfg.RentCSVPath
			}

			csvSource := storage.NewCSVSource(prices, rents, logger)
			priceRows, err := csvSource.LoadPrices(ctx)
			if err != nil {
				return err
			}
			rentRows, err := csvSource.LoadRents(ctx)
			if err != nil {
				return err
			}

			src, err := openSource(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer src.Close()
			store, ok := src.(*storage.SQLSource)
			if !ok {
				return fmt.Errorf("DATA_SOURCE %q is not a SQL store", cfg.DataSource)
			}

			if err := store.Replace(ctx, priceRows, rentRows); err != nil {
				return err
			}
			logger.Info("[import] Stored %d price rows and %d rent rows in %s", len(priceRows), len(rentRows), cfg.DataSource)
			return nil
		},
	}
	cmd.Flags().String("prices", "", "Price CSV (defaults to PRICE_CSV_PATH)")
	cmd.Flags().String("rents", "", "Rent CSV (defaults to RENT_CSV_PATH)")
	return cmd
}
