package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/insights"
	"ledgerly/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db                 *gorm.DB
	transactionService TransactionServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, transactionService TransactionServicer) BudgetServicer {
	return &budgetService{db: db, transactionService: transactionService}
}

// CreateBudget adds a monthly limit for a category. A second budget for the
// same category and month is allowed; the aggregator sums them.
func (s *budgetService) CreateBudget(ctx context.Context, userID string, period Period, category string, limit decimal.Decimal) (*models.Budget, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if len(category) > maxCategoryLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be at most 64 characters")
	}
	if limit.IsNegative() {
		return nil, apperrors.ErrNegativeLimit
	}
	if err := checkMoney("limit_amount", limit); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:      userID,
		Year:        period.Year,
		Month:       period.Month,
		Category:    category,
		LimitAmount: limit,
	}
	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetBudgetsForPeriod lists a month's budgets in creation order, which is
// also the order the dashboard reports them in.
func (s *budgetService) GetBudgetsForPeriod(ctx context.Context, userID string, period Period) ([]models.Budget, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var budgets []models.Budget
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, period.Year, period.Month).
		Order("created_at ASC").
		Order("id ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID retrieves a budget by ID for a specific user
func (s *budgetService) GetBudgetByID(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudgetLimit changes a budget's limit; nothing else is editable.
func (s *budgetService) UpdateBudgetLimit(ctx context.Context, userID, budgetID string, limit decimal.Decimal) (*models.Budget, error) {
	if limit.IsNegative() {
		return nil, apperrors.ErrNegativeLimit
	}
	if err := checkMoney("limit_amount", limit); err != nil {
		return nil, err
	}

	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	budget.LimitAmount = limit
	if err := s.db.WithContext(ctx).Model(budget).Update("limit_amount", limit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget permanently.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// GetPeriodProgress returns one progress row per budget, each compared with
// the full month's spend in its category.
func (s *budgetService) GetPeriodProgress(ctx context.Context, userID string, period Period) ([]insights.BudgetProgress, error) {
	budgets, err := s.GetBudgetsForPeriod(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	first, last := period.Bounds()
	transactions, err := s.transactionService.GetTransactionsInRange(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	spent := insights.Summarize(transactions, nil).SpentByCategory
	progress := make([]insights.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		p := insights.Progress(spent[b.Category], b.LimitAmount)
		p.BudgetIDs = []string{b.ID}
		p.Category = b.Category
		progress = append(progress, p)
	}
	return progress, nil
}
