package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerly/internal/insights"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string) error
	GetRefreshTokenHash(ctx context.Context, userID string) (string, error)
}

// TransactionInput holds the fields a user supplies for a new transaction.
// A blank Category is filled in by the categorizer.
type TransactionInput struct {
	Kind       models.TransactionKind
	Amount     decimal.Decimal
	Category   string
	Note       *string
	OccurredOn time.Time
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Kind     *models.TransactionKind
	Category *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID string, input TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionsInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, userID string, period Period, category string, limit decimal.Decimal) (*models.Budget, error)
	GetBudgetsForPeriod(ctx context.Context, userID string, period Period) ([]models.Budget, error)
	GetBudgetByID(ctx context.Context, userID, budgetID string) (*models.Budget, error)
	UpdateBudgetLimit(ctx context.Context, userID, budgetID string, limit decimal.Decimal) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
	GetPeriodProgress(ctx context.Context, userID string, period Period) ([]insights.BudgetProgress, error)
}

// BillInput holds the fields a user supplies for a new bill.
type BillInput struct {
	Name    string
	Amount  decimal.Decimal
	DueDate time.Time
	Repeat  models.BillRepeat
	Notes   *string
}

// BillView is a bill together with its status as of today.
type BillView struct {
	models.Bill
	Status insights.BillStatus `json:"status"`
}

// BillServicer defines the contract for bill reminders.
type BillServicer interface {
	CreateBill(ctx context.Context, userID string, input BillInput) (*BillView, error)
	ListBills(ctx context.Context, userID string) ([]BillView, error)
	GetBillByID(ctx context.Context, userID, billID string) (*BillView, error)
	MarkPaid(ctx context.Context, userID, billID string) (*BillView, error)
	DeleteBill(ctx context.Context, userID, billID string) error
	GetUpcomingBills(ctx context.Context, userID string, from time.Time, days int) ([]BillView, error)
}

// GoalInput holds the fields a user supplies for a new goal.
type GoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	TargetDate   *time.Time
}

// GoalView is a goal together with its progress.
type GoalView struct {
	models.Goal
	Progress insights.GoalProgress `json:"progress"`
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(ctx context.Context, userID string, input GoalInput) (*GoalView, error)
	ListGoals(ctx context.Context, userID string) ([]GoalView, error)
	GetGoalByID(ctx context.Context, userID, goalID string) (*GoalView, error)
	Contribute(ctx context.Context, userID, goalID string, delta decimal.Decimal) (*GoalView, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// Dashboard is everything the landing page renders for one period.
type Dashboard struct {
	GreetingName  string           `json:"greeting_name"`
	Period        Period           `json:"period"`
	Summary       insights.Summary `json:"summary"`
	UpcomingBills []BillView       `json:"upcoming_bills"`
}

// DashboardServicer assembles the dashboard from the other services.
type DashboardServicer interface {
	GetDashboard(ctx context.Context, userID string, period Period, today time.Time) (*Dashboard, error)
}

// WarningRecorder counts dashboard warnings, typically in Prometheus.
type WarningRecorder interface {
	RecordWarning(tier string)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
