package cli

import (
	"fmt"
	"io"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/pterm/pterm"
)

func renderTable(out io.Writer, data pterm.TableData) error {
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

func renderRecords(out io.Writer, records []domain.AggregatedRecord, withGross bool) error {
	header := []string{"Period", "From", "To", "Hours", "Burned", "Planned"}
	if withGross {
		header = append(header, "Burned (gross)", "Planned (gross)")
	}

	data := pterm.TableData{header}
	for _, r := range records {
		row := []string{
			r.Title,
			r.StartDate.Format("02.01.2006"),
			r.EndDate.Format("02.01.2006"),
			fmt.Sprintf("%.2f", r.Hours),
			r.BudgetBurned.String(),
			r.BudgetPlanned.String(),
		}
		if withGross {
			row = append(row, moneyOrDash(r.BudgetBurnedGross), moneyOrDash(r.BudgetPlannedGross))
		}
		data = append(data, row)
	}
	return renderTable(out, data)
}

func renderSeries(out io.Writer, keys []domain.PeriodKey, stats *domain.TargetAndActual, withGross bool) error {
	header := []string{"Series"}
	for _, k := range keys {
		header = append(header, k.Title())
	}

	data := pterm.TableData{header}
	for _, s := range append([]domain.MoneySeries{stats.Target}, stats.Actual...) {
		data = append(data, seriesRow(s.Name, s.Values))
		if withGross && len(s.ValuesGross) > 0 {
			data = append(data, seriesRow(s.Name+" (gross)", s.ValuesGross))
		}
	}
	return renderTable(out, data)
}

func seriesRow(name string, values []domain.Money) []string {
	row := make([]string, 0, len(values)+1)
	row = append(row, name)
	for _, v := range values {
		row = append(row, v.String())
	}
	return row
}

func renderContractStatistics(out io.Writer, stats []domain.ContractPeriodStatistic) error {
	data := pterm.TableData{{"Month", "Progress", "Spent", "Remaining", "Invoiced"}}
	for _, s := range stats {
		progress := "-"
		if s.ProgressRatio != nil {
			progress = s.ProgressRatio.StringFixed(2)
		}
		data = append(data, []string{
			fmt.Sprintf("%d-%02d", s.Year, s.Month+1),
			progress,
			s.Spent.String(),
			s.Remaining.String(),
			s.Invoiced.String(),
		})
	}
	return renderTable(out, data)
}

func moneyOrDash(m *domain.Money) string {
	if m == nil {
		return "-"
	}
	return m.String()
}
