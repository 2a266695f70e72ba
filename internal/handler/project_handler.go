package handler

import (
	"net/http"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ProjectHandler serves project sparklines, tag-filtered budget charts and person charts
type ProjectHandler struct {
	statisticsService *service.StatisticsService
	defaultWindow     int
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(statisticsService *service.StatisticsService, defaultWindow int) *ProjectHandler {
	return &ProjectHandler{
		statisticsService: statisticsService,
		defaultWindow:     defaultWindow,
	}
}

// GetBurnedWeekly handles GET /api/v1/projects/:id/burned/weekly
func (h *ProjectHandler) GetBurnedWeekly(c echo.Context) error {
	return h.sparkline(c, domain.SourceWork)
}

// GetPlannedWeekly handles GET /api/v1/projects/:id/planned/weekly
func (h *ProjectHandler) GetPlannedWeekly(c echo.Context) error {
	return h.sparkline(c, domain.SourcePlan)
}

func (h *ProjectHandler) sparkline(c echo.Context, source domain.RecordSource) error {
	projectID, perr := parseIDParam(c, "id", "project")
	if perr != nil {
		return perr.respond(c)
	}
	window, perr := parseWindow(c, h.defaultWindow)
	if perr != nil {
		return perr.respond(c)
	}

	scope := domain.Scope{Kind: domain.ScopeProject, ID: projectID}
	series, err := h.statisticsService.Sparkline(c.Request().Context(), source, domain.GranularityWeek, scope, window)
	if err != nil {
		return respondServiceError(c, err, "Failed to get sparkline")
	}
	return c.JSON(http.StatusOK, series)
}

// GetDailyRates handles GET /api/v1/projects/:id/daily-rates
func (h *ProjectHandler) GetDailyRates(c echo.Context) error {
	projectID, perr := parseIDParam(c, "id", "project")
	if perr != nil {
		return perr.respond(c)
	}
	window, perr := parseWindow(c, h.defaultWindow)
	if perr != nil {
		return perr.respond(c)
	}

	series, err := h.statisticsService.AverageDailyRates(c.Request().Context(), projectID, window)
	if err != nil {
		return respondServiceError(c, err, "Failed to get average daily rates")
	}
	return c.JSON(http.StatusOK, series)
}

// GetTaggedBudgetsWeekly handles GET /api/v1/projects/:id/budgets/stats/weeks?tags=a,b
func (h *ProjectHandler) GetTaggedBudgetsWeekly(c echo.Context) error {
	scope, err := h.taggedScope(c)
	if err != nil {
		return err
	}
	if scope == nil {
		return nil
	}
	return targetAndActualWeeks(c, h.statisticsService, h.defaultWindow, *scope, domain.BreakdownBudget)
}

// GetTaggedBudgetsMonthly handles GET /api/v1/projects/:id/budgets/stats/months?tags=a,b
func (h *ProjectHandler) GetTaggedBudgetsMonthly(c echo.Context) error {
	scope, err := h.taggedScope(c)
	if err != nil {
		return err
	}
	if scope == nil {
		return nil
	}
	return targetAndActualMonths(c, h.statisticsService, h.defaultWindow, *scope, domain.BreakdownBudget)
}

// taggedScope resolves the tag filter. A nil scope means a response was already written.
func (h *ProjectHandler) taggedScope(c echo.Context) (*domain.Scope, error) {
	projectID, perr := parseIDParam(c, "id", "project")
	if perr != nil {
		return nil, perr.respond(c)
	}

	scope, err := h.statisticsService.BudgetsByTags(c.Request().Context(), projectID, parseTags(c))
	if err != nil {
		return nil, respondServiceError(c, err, "Failed to resolve budget tags")
	}
	return &scope, nil
}

// GetPersonWeekly handles GET /api/v1/people/:id/stats/weeks, broken down per budget
func (h *ProjectHandler) GetPersonWeekly(c echo.Context) error {
	personID, perr := parseIDParam(c, "id", "person")
	if perr != nil {
		return perr.respond(c)
	}
	return targetAndActualWeeks(c, h.statisticsService, h.defaultWindow,
		domain.Scope{Kind: domain.ScopePerson, ID: personID}, domain.BreakdownBudget)
}

// GetPersonMonthly handles GET /api/v1/people/:id/stats/months, broken down per budget
func (h *ProjectHandler) GetPersonMonthly(c echo.Context) error {
	personID, perr := parseIDParam(c, "id", "person")
	if perr != nil {
		return perr.respond(c)
	}
	return targetAndActualMonths(c, h.statisticsService, h.defaultWindow,
		domain.Scope{Kind: domain.ScopePerson, ID: personID}, domain.BreakdownBudget)
}
