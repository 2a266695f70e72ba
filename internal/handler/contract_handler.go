package handler

import (
	"net/http"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ContractHandler handles contract statistics requests
type ContractHandler struct {
	contractService *service.ContractStatisticsService
	archiveService  *service.ArchiveService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *service.ContractStatisticsService, archiveService *service.ArchiveService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		archiveService:  archiveService,
	}
}

// ContractStatisticResponse represents a contract statistic in API responses.
// Month is 1-12.
type ContractStatisticResponse struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Progress  *string `json:"progress"`
	Spent     string  `json:"spentBudget"`
	Remaining string  `json:"remainingContractBudget"`
	Invoiced  string  `json:"invoicedBudget"`
}

// GetStatistic handles GET /api/v1/contracts/:id/statistics/:year/:month
func (h *ContractHandler) GetStatistic(c echo.Context) error {
	contractID, year, month, perr := parseContractMonth(c)
	if perr != nil {
		return perr.respond(c)
	}

	stat, err := h.contractService.StatisticAsOf(c.Request().Context(), contractID, year, month)
	if err != nil {
		return respondServiceError(c, err, "Failed to get contract statistic")
	}
	return c.JSON(http.StatusOK, toContractStatisticResponse(*stat))
}

// GetSingleMonthStatistic handles GET /api/v1/contracts/:id/statistics/:year/:month/single
func (h *ContractHandler) GetSingleMonthStatistic(c echo.Context) error {
	contractID, year, month, perr := parseContractMonth(c)
	if perr != nil {
		return perr.respond(c)
	}

	stat, err := h.contractService.StatisticForMonth(c.Request().Context(), contractID, year, month)
	if err != nil {
		return respondServiceError(c, err, "Failed to get contract statistic")
	}
	return c.JSON(http.StatusOK, toContractStatisticResponse(*stat))
}

// GetMonthlyStatistics handles GET /api/v1/contracts/:id/statistics
func (h *ContractHandler) GetMonthlyStatistics(c echo.Context) error {
	contractID, perr := parseIDParam(c, "id", "contract")
	if perr != nil {
		return perr.respond(c)
	}

	stats, err := h.contractService.MonthlyStatistics(c.Request().Context(), contractID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get contract statistics")
	}

	response := make([]ContractStatisticResponse, len(stats))
	for i, stat := range stats {
		response[i] = toContractStatisticResponse(stat)
	}
	return c.JSON(http.StatusOK, response)
}

// ArchiveStatistic handles POST /api/v1/contracts/:id/statistics/:year/:month/archive
func (h *ContractHandler) ArchiveStatistic(c echo.Context) error {
	contractID, year, month, perr := parseContractMonth(c)
	if perr != nil {
		return perr.respond(c)
	}
	if !h.archiveService.Enabled() {
		return respondServiceError(c, domain.ErrArchiveDisabled, "Failed to archive contract statistic")
	}

	ctx := c.Request().Context()
	stat, err := h.contractService.StatisticAsOf(ctx, contractID, year, month)
	if err != nil {
		return respondServiceError(c, err, "Failed to get contract statistic")
	}

	archived, err := h.archiveService.Archive(ctx, "contract-statistic", contractID, toContractStatisticResponse(*stat))
	if err != nil {
		return respondServiceError(c, err, "Failed to archive contract statistic")
	}
	return c.JSON(http.StatusCreated, archived)
}

func parseContractMonth(c echo.Context) (int64, int, int, *paramError) {
	contractID, perr := parseIDParam(c, "id", "contract")
	if perr != nil {
		return 0, 0, 0, perr
	}
	year, month, perr := parseYearMonth(c)
	if perr != nil {
		return 0, 0, 0, perr
	}
	return contractID, year, month, nil
}

func toContractStatisticResponse(stat domain.ContractPeriodStatistic) ContractStatisticResponse {
	resp := ContractStatisticResponse{
		Year:      stat.Year,
		Month:     stat.Month + 1,
		Spent:     stat.Spent.String(),
		Remaining: stat.Remaining.String(),
		Invoiced:  stat.Invoiced.String(),
	}
	if stat.ProgressRatio != nil {
		p := stat.ProgressRatio.StringFixed(2)
		resp.Progress = &p
	}
	return resp
}
