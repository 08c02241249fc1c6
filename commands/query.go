package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"proptech-analytics/services"
	"proptech-analytics/storage"
)

func LocalitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "localities",
		Short: "List the localities with merged data",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := bootstrap(cmd, true)
			defer rt.Close()

			names := make([]string, 0)
			for _, k := range rt.app.Stats.Localities() {
				names = append(names, services.DisplayName(k))
			}
			return printJSON(cmd.OutOrStdout(), names)
		},
	}
}

func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <locality>",
		Short: "Show the statistics of a locality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := bootstrap(cmd, true)
			defer rt.Close()

			rec, err := rt.app.Stats.Lookup(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func AnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <locality>",
		Short: "Run an investment analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := bootstrap(cmd, true)
			defer rt.Close()

			req, err := investmentRequest(cmd, rt.app.Engine, args[0])
			if err != nil {
				return err
			}
			report, err := rt.app.Engine.Analyze(req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	investmentFlags(cmd)
	return cmd
}

func CompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <locality> <locality>",
		Short: "Compare two localities",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := bootstrap(cmd, true)
			defer rt.Close()

			report := rt.app.Comparator.Compare(args[0], args[1])
			if report == nil {
				for _, loc := range args {
					if _, err := rt.app.Stats.Lookup(loc); err != nil {
						return err
					}
				}
				return errors.New("comparison unavailable")
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func ROICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roi <locality>",
		Short: "Estimate the rental yield for a price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := bootstrap(cmd, true)
			defer rt.Close()

			price, _ := cmd.Flags().GetFloat64("price")
			est, err := rt.app.ROI.Estimate(commandContext(cmd), args[0], price)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), est)
		},
	}
	cmd.Flags().Float64("price", 0, "Property price in lakh")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func EMICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute a loan EMI",
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, _ := cmd.Flags().GetFloat64("principal")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetInt("years")

			schedule, err := services.Schedule(principal, rate, years)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), schedule)
		},
	}
	cmd.Flags().Float64("principal", 0, "Loan amount in rupees")
	cmd.Flags().Float64("rate", services.StandardDefaults.InterestRatePct, "Annual interest rate in percent")
	cmd.Flags().Int("years", 20, "Tenure in years")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func RankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank localities by average ROI, or by ROI on cash for a budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := bootstrap(cmd, true)
			defer rt.Close()

			if cmd.Flags().Changed("budget") {
				req, err := investmentRequest(cmd, rt.app.Engine, "")
				if err != nil {
					return err
				}
				ranks, err := rt.app.Ranker.RankInvestments(req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ranks)
			}

			entries := rt.app.Ranker.Heatmap()
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				w, err := storage.NewCSVWriter(out)
				if err != nil {
					return err
				}
				if err := w.WriteRanking(entries); err != nil {
					_ = w.Close()
					return err
				}
				if err := w.Close(); err != nil {
					return err
				}
				rt.logger.Info("[rank] Wrote %d localities to %s", len(entries), out)
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	investmentFlags(cmd)
	cmd.Flags().String("out", "", "Also write the ROI ranking to this CSV file")
	return cmd
}

func investmentFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("budget", 0, "Property price in lakh")
	cmd.Flags().Int("horizon", 20, "Loan tenure in years")
	cmd.Flags().String("risk", "medium", "Risk tolerance: low, medium or high")
	cmd.Flags().Float64("down-payment", 0, "Down payment percent (default from DEFAULT_DOWN_PAYMENT_PCT)")
	cmd.Flags().Float64("rate", 0, "Interest rate percent (default from DEFAULT_INTEREST_RATE_PCT)")
	cmd.Flags().Float64("maintenance", 0, "Maintenance percent (default from DEFAULT_MAINTENANCE_PCT)")
}

func investmentRequest(cmd *cobra.Command, engine *services.InvestmentEngine, locality string) (services.InvestmentRequest, error) {
	f := cmd.Flags()
	budget, err := f.GetFloat64("budget")
	if err != nil {
		return services.InvestmentRequest{}, fmt.Errorf("budget: %w", err)
	}
	horizon, _ := f.GetInt("horizon")
	risk, _ := f.GetString("risk")

	req := engine.Request(locality, budget, horizon, risk)
	if f.Changed("down-payment") {
		req.DownPaymentPct, _ = f.GetFloat64("down-payment")
	}
	if f.Changed("rate") {
		req.InterestRatePct, _ = f.GetFloat64("rate")
	}
	if f.Changed("maintenance") {
		req.MaintenancePct, _ = f.GetFloat64("maintenance")
	}
	return req, nil
}
