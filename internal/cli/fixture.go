// Package cli runs the report engine over YAML fixtures and renders the results in the terminal.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML input of budgetctl. Amounts are decimal strings and months
// are 1-12, as a person would write them.
type Fixture struct {
	Granularity string          `yaml:"granularity"`
	Now         string          `yaml:"now"`
	Window      int             `yaml:"window"`
	Tax         bool            `yaml:"tax"`
	Plan        []SampleFixture `yaml:"plan"`
	Actual      []SampleFixture `yaml:"actual"`
	// Month totals, only needed for tax-aware weekly output
	PlanMonths   []SampleFixture  `yaml:"planMonths"`
	ActualMonths []SampleFixture  `yaml:"actualMonths"`
	Contract     *ContractFixture `yaml:"contract"`
}

// SampleFixture is one plan or actual bucket. Index is the ISO week for weekly
// fixtures and the month (1-12) for monthly ones. Weekly buckets may name the
// calendar month (1-12) they fall in; MonthYear defaults to Year.
type SampleFixture struct {
	Year      int     `yaml:"year"`
	Index     int     `yaml:"index"`
	MonthYear int     `yaml:"monthYear"`
	Month     int     `yaml:"month"`
	Hours     float64 `yaml:"hours"`
	Amount    string  `yaml:"amount"`
	TaxRate   string  `yaml:"taxRate"`
	Label     string  `yaml:"label"`
}

// ContractFixture describes a contract with its booked work and invoices
type ContractFixture struct {
	Name      string              `yaml:"name"`
	Budget    string              `yaml:"budget"`
	StartDate string              `yaml:"startDate"`
	Work      []WorkRecordFixture `yaml:"work"`
	Invoices  []InvoiceFixture    `yaml:"invoices"`
}

type WorkRecordFixture struct {
	Year      int    `yaml:"year"`
	Month     int    `yaml:"month"`
	Minutes   int64  `yaml:"minutes"`
	DailyRate string `yaml:"dailyRate"`
}

type InvoiceFixture struct {
	Year  int    `yaml:"year"`
	Month int    `yaml:"month"`
	Sum   string `yaml:"sum"`
}

// LoadFixture reads and parses a YAML fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses YAML fixture content
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing YAML fixture: %w", err)
	}
	if f.Granularity == "" {
		f.Granularity = "week"
	}
	if f.Window == 0 {
		f.Window = 5
	}
	return &f, nil
}

// GranularityValue parses the fixture granularity
func (f *Fixture) GranularityValue() (domain.Granularity, error) {
	return domain.ParseGranularity(f.Granularity)
}

// NowValue returns the fixture's reference date, or the current time when unset
func (f *Fixture) NowValue() (time.Time, error) {
	if f.Now == "" {
		return time.Now(), nil
	}
	now, err := time.Parse("2006-01-02", f.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: now %q", domain.ErrInvalidInput, f.Now)
	}
	return now, nil
}

// Samples converts sample fixtures of the given granularity
func Samples(g domain.Granularity, fixtures []SampleFixture) ([]domain.Sample, error) {
	samples := make([]domain.Sample, 0, len(fixtures))
	for _, sf := range fixtures {
		s, err := sf.toSample(g)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (sf SampleFixture) toSample(g domain.Granularity) (domain.Sample, error) {
	amount, err := domain.ParseMoney(sf.Amount)
	if err != nil {
		return domain.Sample{}, err
	}

	s := domain.Sample{Hours: sf.Hours, Amount: amount, Label: sf.Label}
	switch g {
	case domain.GranularityMonth:
		s.Period = domain.MonthKey(sf.Year, sf.Index-1)
	default:
		s.Period = domain.WeekKey(sf.Year, sf.Index)
		if sf.Month > 0 {
			monthYear := sf.MonthYear
			if monthYear == 0 {
				monthYear = sf.Year
			}
			s.Month = domain.MonthKey(monthYear, sf.Month-1)
		}
	}
	if err := s.Period.Validate(); err != nil {
		return domain.Sample{}, err
	}

	if sf.TaxRate != "" {
		rate, err := decimal.NewFromString(sf.TaxRate)
		if err != nil {
			return domain.Sample{}, fmt.Errorf("%w: tax rate %q", domain.ErrInvalidInput, sf.TaxRate)
		}
		s.TaxRate = &rate
	}
	return s, nil
}

// ContractData converts the contract fixture. Months become zero-based.
func (cf *ContractFixture) ContractData() (domain.Contract, []domain.WorkRecord, []domain.Invoice, error) {
	budget, err := domain.ParseMoney(cf.Budget)
	if err != nil {
		return domain.Contract{}, nil, nil, err
	}
	contract := domain.Contract{Name: cf.Name, Budget: budget}
	if cf.StartDate != "" {
		start, err := time.Parse("2006-01-02", cf.StartDate)
		if err != nil {
			return domain.Contract{}, nil, nil, fmt.Errorf("%w: startDate %q", domain.ErrInvalidInput, cf.StartDate)
		}
		contract.StartDate = start
	}

	records := make([]domain.WorkRecord, 0, len(cf.Work))
	for _, w := range cf.Work {
		rate, err := domain.ParseMoney(w.DailyRate)
		if err != nil {
			return domain.Contract{}, nil, nil, err
		}
		records = append(records, domain.WorkRecord{Year: w.Year, Month: w.Month - 1, Minutes: w.Minutes, DailyRate: rate})
	}

	invoices := make([]domain.Invoice, 0, len(cf.Invoices))
	for _, inv := range cf.Invoices {
		sum, err := domain.ParseMoney(inv.Sum)
		if err != nil {
			return domain.Contract{}, nil, nil, err
		}
		invoices = append(invoices, domain.Invoice{Year: inv.Year, Month: inv.Month - 1, Sum: sum})
	}
	return contract, records, invoices, nil
}
