package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/insights"
	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

const testBudgetID = "0190a1b2-0000-7000-8000-0000000000b1"

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/progress", handler.GetBudgetProgress)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, audit))

		rec := doRequest(r, "POST", "/budgets", `{"year":2024,"month":3,"category":"food","limit_amount":"250.00"}`)

		assertStatus(t, rec, http.StatusCreated)
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["category"] != "food" || budget["limit_amount"] != "250" {
			t.Errorf("unexpected budget %v", budget)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_BUDGET" {
			t.Errorf("expected audit entry, got %v", audit.actions)
		}
	})

	t.Run("accepts a zero limit", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets", `{"year":2024,"month":3,"category":"food","limit_amount":0}`)

		assertStatus(t, rec, http.StatusCreated)
	})

	t.Run("returns 400 on missing limit", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets", `{"year":2024,"month":3,"category":"food"}`)

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing category", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets", `{"year":2024,"month":3,"limit_amount":10}`)

		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("passes service validation errors through", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ string, _ services.Period, _ string, _ decimal.Decimal) (*models.Budget, error) {
				return nil, apperrors.ErrInvalidPeriod
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/budgets", `{"year":2024,"month":13,"category":"food","limit_amount":10}`)

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_PERIOD")
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("defaults to the current month", func(t *testing.T) {
		var got services.Period
		svc := &mockBudgetService{
			getBudgetsForPeriodFn: func(_ string, period services.Period) ([]models.Budget, error) {
				got = period
				return []models.Budget{{Category: "food"}}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets", "")

		assertStatus(t, rec, http.StatusOK)
		if got != (services.Period{Year: 2024, Month: 3}) {
			t.Errorf("expected 2024-03, got %+v", got)
		}
		if n := len(parseJSON(t, rec)["budgets"].([]interface{})); n != 1 {
			t.Errorf("expected 1 budget, got %d", n)
		}
	})

	t.Run("uses explicit period", func(t *testing.T) {
		var got services.Period
		svc := &mockBudgetService{
			getBudgetsForPeriodFn: func(_ string, period services.Period) ([]models.Budget, error) {
				got = period
				return nil, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/budgets?year=2023&month=12", "")

		assertStatus(t, rec, http.StatusOK)
		if got != (services.Period{Year: 2023, Month: 12}) {
			t.Errorf("expected 2023-12, got %+v", got)
		}
	})

	for _, q := range []string{"month=0", "month=13", "year=1999", "month=march"} {
		t.Run("returns 400 for "+q, func(t *testing.T) {
			r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

			rec := doRequest(r, "GET", "/budgets?"+q, "")

			assertStatus(t, rec, http.StatusBadRequest)
			assertErrorCode(t, parseJSON(t, rec), "INVALID_PERIOD")
		})
	}
}

func TestBudgetHandler_GetBudgetProgress(t *testing.T) {
	svc := &mockBudgetService{
		getPeriodProgressFn: func(_ string, _ services.Period) ([]insights.BudgetProgress, error) {
			p := insights.Progress(decimal.NewFromInt(90), decimal.NewFromInt(100))
			p.Category = "food"
			p.BudgetIDs = []string{testBudgetID}
			return []insights.BudgetProgress{p}, nil
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/budgets/progress?year=2024&month=3", "")

	assertStatus(t, rec, http.StatusOK)
	progress := parseJSON(t, rec)["progress"].([]interface{})
	row := progress[0].(map[string]interface{})
	if row["percent_used"].(float64) != 90 || row["tier"] != "approaching" {
		t.Errorf("unexpected progress row %v", row)
	}
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, audit))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"limit_amount":"300"}`)

		assertStatus(t, rec, http.StatusOK)
		if len(audit.actions) != 1 || audit.actions[0] != "UPDATE_BUDGET" {
			t.Errorf("expected audit entry, got %v", audit.actions)
		}
	})

	t.Run("returns 400 on negative limit", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetLimitFn: func(_, _ string, _ decimal.Decimal) (*models.Budget, error) {
				return nil, apperrors.ErrNegativeLimit
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"limit_amount":"-1"}`)

		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_LIMIT")
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetLimitFn: func(_, _ string, _ decimal.Decimal) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID, `{"limit_amount":"1"}`)

		assertStatus(t, rec, http.StatusNotFound)
	})
}

func TestBudgetHandler_GetAndDeleteBudget(t *testing.T) {
	r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}, &mockAuditService{}))

	assertStatus(t, doRequest(r, "GET", "/budgets/"+testBudgetID, ""), http.StatusOK)
	assertStatus(t, doRequest(r, "GET", "/budgets/not-a-uuid", ""), http.StatusBadRequest)
	assertStatus(t, doRequest(r, "DELETE", "/budgets/"+testBudgetID, ""), http.StatusOK)

	svc := &mockBudgetService{deleteBudgetFn: func(_, _ string) error { return apperrors.ErrBudgetNotFound }}
	r = setupBudgetRouter(NewBudgetHandler(svc, &mockAuditService{}))
	rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID, "")
	assertStatus(t, rec, http.StatusNotFound)
	assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
}
