package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/dafibh/burnrate/burnrate-backend/internal/service"
	"github.com/dafibh/burnrate/burnrate-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectHandler(sampleRepo *testutil.MockSampleRepository, budgetRepo *testutil.MockBudgetRepository) *ProjectHandler {
	return NewProjectHandler(newStatisticsService(sampleRepo, budgetRepo), service.DefaultWindow)
}

func TestGetBurnedWeekly_Success(t *testing.T) {
	e := echo.New()
	sampleRepo := testutil.NewMockSampleRepository()
	handler := newProjectHandler(sampleRepo, testutil.NewMockBudgetRepository())

	sampleRepo.AddSamples(domain.SourceWork, domain.GranularityWeek,
		domain.Sample{Period: domain.WeekKey(2015, 19), Amount: domain.MoneyFromCents(12345)},
		domain.Sample{Period: domain.WeekKey(2015, 19), Amount: domain.MoneyFromCents(100)},
	)

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/projects/9/burned/weekly", []string{"id"}, []string{"9"})

	if err := handler.GetBurnedWeekly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response seriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "work", response.Name)
	// default window of five weeks ending with 2015-21
	assert.Equal(t, []string{"0.00", "0.00", "124.45", "0.00", "0.00"}, response.Values)

	require.Len(t, sampleRepo.Queries, 1)
	assert.Equal(t, domain.ScopeProject, sampleRepo.Queries[0].Scope.Kind)
	assert.Equal(t, int64(9), sampleRepo.Queries[0].Scope.ID)
}

func TestGetPlannedWeekly_UsesPlanRecords(t *testing.T) {
	e := echo.New()
	sampleRepo := testutil.NewMockSampleRepository()
	handler := newProjectHandler(sampleRepo, testutil.NewMockBudgetRepository())

	sampleRepo.AddSamples(domain.SourcePlan, domain.GranularityWeek,
		domain.Sample{Period: domain.WeekKey(2015, 21), Amount: domain.MoneyFromCents(5000)},
	)

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/projects/9/planned/weekly?window=2", []string{"id"}, []string{"9"})

	if err := handler.GetPlannedWeekly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response seriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "plan", response.Name)
	assert.Equal(t, []string{"0.00", "50.00"}, response.Values)
}

func TestGetDailyRates_Success(t *testing.T) {
	e := echo.New()
	sampleRepo := testutil.NewMockSampleRepository()
	handler := newProjectHandler(sampleRepo, testutil.NewMockBudgetRepository())

	// 19 May 2015 is day 139
	sampleRepo.DailyRates[9] = []domain.Sample{
		{Period: domain.DayKey(2015, 139), Amount: domain.MoneyFromCents(80000)},
	}

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/projects/9/daily-rates?window=3", []string{"id"}, []string{"9"})

	if err := handler.GetDailyRates(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response seriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "avgDailyRate", response.Name)
	assert.Equal(t, []string{"0.00", "800.00", "0.00"}, response.Values)
}

func TestGetTaggedBudgetsMonthly_FiltersByTags(t *testing.T) {
	e := echo.New()
	sampleRepo := testutil.NewMockSampleRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	handler := newProjectHandler(sampleRepo, budgetRepo)

	budgetRepo.AddBudget(&domain.BudgetFigures{ID: 1, ProjectID: 9, Name: "Budget A", Tags: []string{"backend"}})
	budgetRepo.AddBudget(&domain.BudgetFigures{ID: 2, ProjectID: 9, Name: "Budget B", Tags: []string{"frontend"}})
	budgetRepo.AddBudget(&domain.BudgetFigures{ID: 3, ProjectID: 10, Name: "Other", Tags: []string{"backend"}})

	sampleRepo.AddSamples(domain.SourcePlan, domain.GranularityMonth,
		domain.Sample{Period: domain.MonthKey(2015, 4), Amount: domain.MoneyFromCents(100000)},
	)
	sampleRepo.AddSamples(domain.SourceWork, domain.GranularityMonth,
		domain.Sample{Period: domain.MonthKey(2015, 3), Amount: domain.MoneyFromCents(50000), Label: "Budget A"},
	)

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/projects/9/budgets/stats/months?tags=backend,%20&window=2", []string{"id"}, []string{"9"})

	if err := handler.GetTaggedBudgetsMonthly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response targetAndActualResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"0.00", "1000.00"}, response.Target.Values)
	require.Len(t, response.Actual, 1)
	assert.Equal(t, "Budget A", response.Actual[0].Name)
	assert.Equal(t, []string{"500.00", "0.00"}, response.Actual[0].Values)

	require.Len(t, sampleRepo.Queries, 2)
	for _, q := range sampleRepo.Queries {
		assert.Equal(t, domain.ScopeBudgets, q.Scope.Kind)
		assert.Equal(t, []int64{1}, q.Scope.BudgetIDs)
	}
}

func TestGetTaggedBudgetsWeekly_InvalidProject(t *testing.T) {
	e := echo.New()
	handler := newProjectHandler(testutil.NewMockSampleRepository(), testutil.NewMockBudgetRepository())

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/projects/x/budgets/stats/weeks", []string{"id"}, []string{"x"})

	if err := handler.GetTaggedBudgetsWeekly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetPersonMonthly_PerBudget(t *testing.T) {
	e := echo.New()
	sampleRepo := testutil.NewMockSampleRepository()
	handler := newProjectHandler(sampleRepo, testutil.NewMockBudgetRepository())

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/people/5/stats/months?window=4", []string{"id"}, []string{"5"})

	if err := handler.GetPersonMonthly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response targetAndActualResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Target.Values, 4)
	assert.Empty(t, response.Actual)

	for _, q := range sampleRepo.Queries {
		assert.Equal(t, domain.ScopePerson, q.Scope.Kind)
		assert.Equal(t, int64(5), q.Scope.ID)
		if q.Source == domain.SourceWork {
			assert.Equal(t, domain.BreakdownBudget, q.Breakdown)
		}
	}
}
