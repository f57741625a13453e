package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledgerly/internal/config"
	"ledgerly/internal/insights"
	"ledgerly/internal/logger"
	"ledgerly/internal/middleware"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
	"ledgerly/internal/services"
	"ledgerly/internal/validator"
)

const (
	testUserID  = "0190a1b2-0000-7000-8000-000000000001"
	testOtherID = "0190a1b2-0000-7000-8000-0000000000ff"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{
		Env:             "test",
		JWTSecret:       "handler-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
}

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(email, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
}

func (m *mockUserService) CreateUser(_ context.Context, email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(_ context.Context, email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(_ context.Context, userID, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(_ context.Context, userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

var _ services.UserServicer = (*mockUserService)(nil)

type mockTransactionService struct {
	createTransactionFn  func(userID string, input services.TransactionInput) (*models.Transaction, error)
	listTransactionsFn   func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn func(userID, transactionID string) (*models.Transaction, error)
	deleteTransactionFn  func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(_ context.Context, userID string, input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, input)
	}
	return &models.Transaction{UserID: userID, Kind: input.Kind, Amount: input.Amount, Category: input.Category}, nil
}

func (m *mockTransactionService) ListTransactions(_ context.Context, userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionsInRange(_ context.Context, _ string, _, _ time.Time) ([]models.Transaction, error) {
	return nil, nil
}

func (m *mockTransactionService) GetTransactionByID(_ context.Context, userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}, UserID: userID}, nil
}

func (m *mockTransactionService) DeleteTransaction(_ context.Context, userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockBudgetService struct {
	createBudgetFn        func(userID string, period services.Period, category string, limit decimal.Decimal) (*models.Budget, error)
	getBudgetsForPeriodFn func(userID string, period services.Period) ([]models.Budget, error)
	getBudgetByIDFn       func(userID, budgetID string) (*models.Budget, error)
	updateBudgetLimitFn   func(userID, budgetID string, limit decimal.Decimal) (*models.Budget, error)
	deleteBudgetFn        func(userID, budgetID string) error
	getPeriodProgressFn   func(userID string, period services.Period) ([]insights.BudgetProgress, error)
}

func (m *mockBudgetService) CreateBudget(_ context.Context, userID string, period services.Period, category string, limit decimal.Decimal) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, period, category, limit)
	}
	return &models.Budget{UserID: userID, Year: period.Year, Month: period.Month, Category: category, LimitAmount: limit}, nil
}

func (m *mockBudgetService) GetBudgetsForPeriod(_ context.Context, userID string, period services.Period) ([]models.Budget, error) {
	if m.getBudgetsForPeriodFn != nil {
		return m.getBudgetsForPeriodFn(userID, period)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByID(_ context.Context, userID, budgetID string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{Base: models.Base{ID: budgetID}, UserID: userID}, nil
}

func (m *mockBudgetService) UpdateBudgetLimit(_ context.Context, userID, budgetID string, limit decimal.Decimal) (*models.Budget, error) {
	if m.updateBudgetLimitFn != nil {
		return m.updateBudgetLimitFn(userID, budgetID, limit)
	}
	return &models.Budget{Base: models.Base{ID: budgetID}, UserID: userID, LimitAmount: limit}, nil
}

func (m *mockBudgetService) DeleteBudget(_ context.Context, userID, budgetID string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) GetPeriodProgress(_ context.Context, userID string, period services.Period) ([]insights.BudgetProgress, error) {
	if m.getPeriodProgressFn != nil {
		return m.getPeriodProgressFn(userID, period)
	}
	return []insights.BudgetProgress{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

type mockBillService struct {
	createBillFn       func(userID string, input services.BillInput) (*services.BillView, error)
	listBillsFn        func(userID string) ([]services.BillView, error)
	getBillByIDFn      func(userID, billID string) (*services.BillView, error)
	markPaidFn         func(userID, billID string) (*services.BillView, error)
	deleteBillFn       func(userID, billID string) error
	getUpcomingBillsFn func(userID string, from time.Time, days int) ([]services.BillView, error)
}

func (m *mockBillService) CreateBill(_ context.Context, userID string, input services.BillInput) (*services.BillView, error) {
	if m.createBillFn != nil {
		return m.createBillFn(userID, input)
	}
	return &services.BillView{Bill: models.Bill{UserID: userID, Name: input.Name, Amount: input.Amount, DueDate: input.DueDate, Repeat: input.Repeat}}, nil
}

func (m *mockBillService) ListBills(_ context.Context, userID string) ([]services.BillView, error) {
	if m.listBillsFn != nil {
		return m.listBillsFn(userID)
	}
	return []services.BillView{}, nil
}

func (m *mockBillService) GetBillByID(_ context.Context, userID, billID string) (*services.BillView, error) {
	if m.getBillByIDFn != nil {
		return m.getBillByIDFn(userID, billID)
	}
	return &services.BillView{Bill: models.Bill{Base: models.Base{ID: billID}, UserID: userID}}, nil
}

func (m *mockBillService) MarkPaid(_ context.Context, userID, billID string) (*services.BillView, error) {
	if m.markPaidFn != nil {
		return m.markPaidFn(userID, billID)
	}
	return &services.BillView{Bill: models.Bill{Base: models.Base{ID: billID}, UserID: userID, Paid: true}}, nil
}

func (m *mockBillService) DeleteBill(_ context.Context, userID, billID string) error {
	if m.deleteBillFn != nil {
		return m.deleteBillFn(userID, billID)
	}
	return nil
}

func (m *mockBillService) GetUpcomingBills(_ context.Context, userID string, from time.Time, days int) ([]services.BillView, error) {
	if m.getUpcomingBillsFn != nil {
		return m.getUpcomingBillsFn(userID, from, days)
	}
	return []services.BillView{}, nil
}

var _ services.BillServicer = (*mockBillService)(nil)

type mockGoalService struct {
	createGoalFn  func(userID string, input services.GoalInput) (*services.GoalView, error)
	listGoalsFn   func(userID string) ([]services.GoalView, error)
	getGoalByIDFn func(userID, goalID string) (*services.GoalView, error)
	contributeFn  func(userID, goalID string, delta decimal.Decimal) (*services.GoalView, error)
	deleteGoalFn  func(userID, goalID string) error
}

func (m *mockGoalService) CreateGoal(_ context.Context, userID string, input services.GoalInput) (*services.GoalView, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(userID, input)
	}
	return &services.GoalView{Goal: models.Goal{UserID: userID, Name: input.Name, TargetAmount: input.TargetAmount}}, nil
}

func (m *mockGoalService) ListGoals(_ context.Context, userID string) ([]services.GoalView, error) {
	if m.listGoalsFn != nil {
		return m.listGoalsFn(userID)
	}
	return []services.GoalView{}, nil
}

func (m *mockGoalService) GetGoalByID(_ context.Context, userID, goalID string) (*services.GoalView, error) {
	if m.getGoalByIDFn != nil {
		return m.getGoalByIDFn(userID, goalID)
	}
	return &services.GoalView{Goal: models.Goal{Base: models.Base{ID: goalID}, UserID: userID}}, nil
}

func (m *mockGoalService) Contribute(_ context.Context, userID, goalID string, delta decimal.Decimal) (*services.GoalView, error) {
	if m.contributeFn != nil {
		return m.contributeFn(userID, goalID, delta)
	}
	return &services.GoalView{Goal: models.Goal{Base: models.Base{ID: goalID}, UserID: userID, SavedAmount: delta}}, nil
}

func (m *mockGoalService) DeleteGoal(_ context.Context, userID, goalID string) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(userID, goalID)
	}
	return nil
}

var _ services.GoalServicer = (*mockGoalService)(nil)

type mockDashboardService struct {
	getDashboardFn func(userID string, period services.Period, today time.Time) (*services.Dashboard, error)
}

func (m *mockDashboardService) GetDashboard(_ context.Context, userID string, period services.Period, today time.Time) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(userID, period, today)
	}
	return &services.Dashboard{GreetingName: "User", Period: period, UpcomingBills: []services.BillView{}}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

// mockAuditService records the actions it was asked to log.
type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(_ context.Context, _, action, _, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d (%s), got %d: %s", want, http.StatusText(want), rec.Code, rec.Body.String())
	}
}
