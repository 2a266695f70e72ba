package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/service"
	"github.com/dafibh/burnrate/burnrate-backend/internal/util"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	fixturePath string
	asJSON      bool
}

// NewRootCommand builds the budgetctl command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Budget burn-rate reports over YAML fixtures",
		Long:          "Join plan and actual samples, build chart series and contract statistics from a YAML fixture.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.fixturePath, "file", "f", "", "Path to the YAML fixture")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of a table")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(newJoinCommand(opts), newSeriesCommand(opts), newContractCommand(opts))
	return rootCmd
}

func newJoinCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Plan-vs-actual table, one row per period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := LoadFixture(opts.fixturePath)
			if err != nil {
				return err
			}
			records, err := joinFixture(f)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			return renderRecords(cmd.OutOrStdout(), records, f.Tax)
		},
	}
}

func newSeriesCommand(opts *rootOptions) *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Gap-filled target and actual series for the last N periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := LoadFixture(opts.fixturePath)
			if err != nil {
				return err
			}
			if window > 0 {
				f.Window = window
			}
			g, err := f.GranularityValue()
			if err != nil {
				return err
			}
			now, err := f.NowValue()
			if err != nil {
				return err
			}
			stats, err := seriesFixture(f, g, now)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			keys, err := service.Window(g, f.Window, now)
			if err != nil {
				return err
			}
			return renderSeries(cmd.OutOrStdout(), keys, stats, f.Tax)
		},
	}
	cmd.Flags().IntVarP(&window, "window", "w", 0, "Number of periods (overrides the fixture)")
	return cmd
}

func newContractCommand(opts *rootOptions) *cobra.Command {
	var (
		year   int
		month  int
		single bool
	)

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Contract progress for one month, or every month since the contract start",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := LoadFixture(opts.fixturePath)
			if err != nil {
				return err
			}
			if f.Contract == nil {
				return fmt.Errorf("%w: fixture has no contract", domain.ErrInvalidInput)
			}
			now, err := f.NowValue()
			if err != nil {
				return err
			}
			stats, err := contractFixture(f.Contract, year, month, single, now)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			return renderContractStatistics(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year of the statistic (default: every month up to now)")
	cmd.Flags().IntVar(&month, "month", 0, "Month of the statistic, 1-12")
	cmd.Flags().BoolVar(&single, "single", false, "Restrict spent and remaining to exactly that month")
	return cmd
}

func joinFixture(f *Fixture) ([]domain.AggregatedRecord, error) {
	g, err := f.GranularityValue()
	if err != nil {
		return nil, err
	}
	plan, err := Samples(g, f.Plan)
	if err != nil {
		return nil, err
	}
	actual, err := Samples(g, f.Actual)
	if err != nil {
		return nil, err
	}

	switch {
	case !f.Tax && g == domain.GranularityMonth:
		return service.JoinMonthly(plan, actual), nil
	case !f.Tax:
		return service.JoinWeekly(plan, actual), nil
	case g == domain.GranularityMonth:
		return service.JoinMonthlyWithTax(plan, actual)
	case len(f.PlanMonths) > 0 || len(f.ActualMonths) > 0:
		stats, err := monthlyStatsOf(f)
		if err != nil {
			return nil, err
		}
		return service.JoinWeeklyByMonthFraction(plan, actual, stats)
	default:
		return service.JoinWeeklyWithTax(plan, actual)
	}
}

func seriesFixture(f *Fixture, g domain.Granularity, now time.Time) (*domain.TargetAndActual, error) {
	plan, err := Samples(g, f.Plan)
	if err != nil {
		return nil, err
	}
	actual, err := Samples(g, f.Actual)
	if err != nil {
		return nil, err
	}

	if f.Tax && g == domain.GranularityWeek {
		stats, err := monthlyStatsOf(f)
		if err != nil {
			return nil, err
		}
		allocated, err := stats.CalculateCentValuesByMonthlyFraction(plan, actual)
		if err != nil {
			return nil, err
		}
		plan, actual = allocated.Plan, allocated.Actual
	} else if f.Tax {
		for _, samples := range [][]domain.Sample{plan, actual} {
			for i := range samples {
				gross, err := service.SampleGross(samples[i])
				if err != nil {
					return nil, err
				}
				samples[i].Gross = &gross
			}
		}
	}

	return service.BuildTargetAndActual(g, f.Window, plan, actual, now, f.Tax)
}

func monthlyStatsOf(f *Fixture) (*service.MonthlyStats, error) {
	planMonths, err := Samples(domain.GranularityMonth, f.PlanMonths)
	if err != nil {
		return nil, err
	}
	actualMonths, err := Samples(domain.GranularityMonth, f.ActualMonths)
	if err != nil {
		return nil, err
	}
	return service.NewMonthlyStats(planMonths, actualMonths), nil
}

// contractFixture computes one statistic when year and month are given, otherwise
// one per-month statistic from the contract start up to now
func contractFixture(cf *ContractFixture, year, month int, single bool, now time.Time) ([]domain.ContractPeriodStatistic, error) {
	contract, records, invoices, err := cf.ContractData()
	if err != nil {
		return nil, err
	}

	if year == 0 {
		var stats []domain.ContractPeriodStatistic
		for _, ym := range util.MonthsBetween(contract.StartDate, now) {
			stat, err := service.CalculateStatisticForMonth(contract, records, invoices, ym[0], ym[1])
			if err != nil {
				return nil, err
			}
			stats = append(stats, *stat)
		}
		return stats, nil
	}

	calculate := service.CalculateStatisticAsOf
	if single {
		calculate = service.CalculateStatisticForMonth
	}
	stat, err := calculate(contract, records, invoices, year, month-1)
	if err != nil {
		return nil, err
	}
	return []domain.ContractPeriodStatistic{*stat}, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
