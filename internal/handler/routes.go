package handler

import (
	"github.com/dafibh/burnrate/burnrate-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, budgetHandler *BudgetHandler, projectHandler *ProjectHandler, contractHandler *ContractHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.GET("/:id/records/weekly", budgetHandler.GetWeeklyRecords)
	budgets.GET("/:id/records/monthly", budgetHandler.GetMonthlyRecords)
	budgets.GET("/:id/stats/weeks", budgetHandler.GetWeeklyStats)
	budgets.GET("/:id/stats/months", budgetHandler.GetMonthlyStats)
	budgets.GET("/:id/summary", budgetHandler.GetSummary)

	// People routes
	people := api.Group("/people")
	people.GET("/:id/stats/weeks", projectHandler.GetPersonWeekly)
	people.GET("/:id/stats/months", projectHandler.GetPersonMonthly)

	// Project routes
	projects := api.Group("/projects")
	projects.GET("/:id/burned/weekly", projectHandler.GetBurnedWeekly)
	projects.GET("/:id/planned/weekly", projectHandler.GetPlannedWeekly)
	projects.GET("/:id/budgets/stats/weeks", projectHandler.GetTaggedBudgetsWeekly)
	projects.GET("/:id/budgets/stats/months", projectHandler.GetTaggedBudgetsMonthly)
	projects.GET("/:id/daily-rates", projectHandler.GetDailyRates)

	// Contract routes
	contracts := api.Group("/contracts")
	contracts.GET("/:id/statistics", contractHandler.GetMonthlyStatistics)
	contracts.GET("/:id/statistics/:year/:month", contractHandler.GetStatistic)
	contracts.GET("/:id/statistics/:year/:month/single", contractHandler.GetSingleMonthStatistic)
	contracts.POST("/:id/statistics/:year/:month/archive", contractHandler.ArchiveStatistic)
}
