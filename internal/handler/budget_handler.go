package handler

import (
	"net/http"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// BudgetHandler serves the per-budget tables, charts and the budget summary
type BudgetHandler struct {
	statisticsService *service.StatisticsService
	budgetService     *service.BudgetService
	defaultWindow     int
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(statisticsService *service.StatisticsService, budgetService *service.BudgetService, defaultWindow int) *BudgetHandler {
	return &BudgetHandler{
		statisticsService: statisticsService,
		budgetService:     budgetService,
		defaultWindow:     defaultWindow,
	}
}

// AggregatedRecordResponse represents one row of a plan-vs-actual table
type AggregatedRecordResponse struct {
	Title              string  `json:"aggregationPeriodTitle"`
	Start              string  `json:"aggregationPeriodStart"`
	End                string  `json:"aggregationPeriodEnd"`
	Hours              float64 `json:"hours"`
	BudgetBurned       string  `json:"budgetBurned"`
	BudgetPlanned      string  `json:"budgetPlanned"`
	BudgetBurnedGross  *string `json:"budgetBurnedGross,omitempty"`
	BudgetPlannedGross *string `json:"budgetPlannedGross,omitempty"`
}

// GetWeeklyRecords handles GET /api/v1/budgets/:id/records/weekly
func (h *BudgetHandler) GetWeeklyRecords(c echo.Context) error {
	return h.records(c, domain.GranularityWeek)
}

// GetMonthlyRecords handles GET /api/v1/budgets/:id/records/monthly
func (h *BudgetHandler) GetMonthlyRecords(c echo.Context) error {
	return h.records(c, domain.GranularityMonth)
}

func (h *BudgetHandler) records(c echo.Context, g domain.Granularity) error {
	budgetID, perr := parseIDParam(c, "id", "budget")
	if perr != nil {
		return perr.respond(c)
	}
	withTax, perr := parseTaxFlag(c)
	if perr != nil {
		return perr.respond(c)
	}

	records, err := h.statisticsService.BudgetRecords(c.Request().Context(), budgetID, g, withTax)
	if err != nil {
		return respondServiceError(c, err, "Failed to get budget records")
	}

	response := make([]AggregatedRecordResponse, len(records))
	for i, r := range records {
		response[i] = toAggregatedRecordResponse(r)
	}
	return c.JSON(http.StatusOK, response)
}

// GetWeeklyStats handles GET /api/v1/budgets/:id/stats/weeks, broken down per person
func (h *BudgetHandler) GetWeeklyStats(c echo.Context) error {
	budgetID, perr := parseIDParam(c, "id", "budget")
	if perr != nil {
		return perr.respond(c)
	}
	return targetAndActualWeeks(c, h.statisticsService, h.defaultWindow,
		domain.Scope{Kind: domain.ScopeBudget, ID: budgetID}, domain.BreakdownPerson)
}

// GetMonthlyStats handles GET /api/v1/budgets/:id/stats/months, broken down per person
func (h *BudgetHandler) GetMonthlyStats(c echo.Context) error {
	budgetID, perr := parseIDParam(c, "id", "budget")
	if perr != nil {
		return perr.respond(c)
	}
	return targetAndActualMonths(c, h.statisticsService, h.defaultWindow,
		domain.Scope{Kind: domain.ScopeBudget, ID: budgetID}, domain.BreakdownPerson)
}

// GetSummary handles GET /api/v1/budgets/:id/summary
func (h *BudgetHandler) GetSummary(c echo.Context) error {
	budgetID, perr := parseIDParam(c, "id", "budget")
	if perr != nil {
		return perr.respond(c)
	}

	summary, err := h.budgetService.GetSummary(c.Request().Context(), budgetID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get budget summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// targetAndActualWeeks serves a weekly target-and-actual chart, tax-aware when ?tax=true
func targetAndActualWeeks(c echo.Context, svc *service.StatisticsService, defaultWindow int, scope domain.Scope, breakdown domain.Breakdown) error {
	window, perr := parseWindow(c, defaultWindow)
	if perr != nil {
		return perr.respond(c)
	}
	withTax, perr := parseTaxFlag(c)
	if perr != nil {
		return perr.respond(c)
	}

	var (
		stats *domain.TargetAndActual
		err   error
	)
	if withTax {
		stats, err = svc.WeeklyTargetAndActualWithTax(c.Request().Context(), scope, breakdown, window)
	} else {
		stats, err = svc.TargetAndActual(c.Request().Context(), domain.GranularityWeek, scope, breakdown, window)
	}
	if err != nil {
		return respondServiceError(c, err, "Failed to get weekly statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

func targetAndActualMonths(c echo.Context, svc *service.StatisticsService, defaultWindow int, scope domain.Scope, breakdown domain.Breakdown) error {
	window, perr := parseWindow(c, defaultWindow)
	if perr != nil {
		return perr.respond(c)
	}

	stats, err := svc.TargetAndActual(c.Request().Context(), domain.GranularityMonth, scope, breakdown, window)
	if err != nil {
		return respondServiceError(c, err, "Failed to get monthly statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

func toAggregatedRecordResponse(r domain.AggregatedRecord) AggregatedRecordResponse {
	resp := AggregatedRecordResponse{
		Title:         r.Title,
		Start:         r.StartDate.Format("2006-01-02"),
		End:           r.EndDate.Format("2006-01-02"),
		Hours:         r.Hours,
		BudgetBurned:  r.BudgetBurned.String(),
		BudgetPlanned: r.BudgetPlanned.String(),
	}
	if r.BudgetBurnedGross != nil {
		s := r.BudgetBurnedGross.String()
		resp.BudgetBurnedGross = &s
	}
	if r.BudgetPlannedGross != nil {
		s := r.BudgetPlannedGross.String()
		resp.BudgetPlannedGross = &s
	}
	return resp
}
