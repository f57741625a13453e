package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/events"
	"ledgerly/internal/insights"
	"ledgerly/internal/models"
)

// goalService handles savings goals.
type goalService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, publisher events.Publisher) GoalServicer {
	return &goalService{db: db, publisher: publisher}
}

func goalView(g models.Goal) GoalView {
	return GoalView{Goal: g, Progress: insights.GoalProgressOf(g)}
}

// CreateGoal adds a savings goal, optionally with an opening balance.
func (s *goalService) CreateGoal(ctx context.Context, userID string, input GoalInput) (*GoalView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !input.TargetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Target amount must be greater than zero")
	}
	if input.SavedAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Saved amount cannot be negative")
	}
	if err := checkMoney("target_amount", input.TargetAmount); err != nil {
		return nil, err
	}
	if err := checkMoney("saved_amount", input.SavedAmount); err != nil {
		return nil, err
	}

	goal := models.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: input.TargetAmount,
		SavedAmount:  input.SavedAmount,
	}
	if input.TargetDate != nil {
		d := models.DateOnly(*input.TargetDate)
		goal.TargetDate = &d
	}
	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	v := goalView(goal)
	return &v, nil
}

// ListGoals returns goals, newest first.
func (s *goalService) ListGoals(ctx context.Context, userID string) ([]GoalView, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalView(g))
	}
	return out, nil
}

func loadGoal(ctx context.Context, db *gorm.DB, userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// GetGoalByID retrieves a goal by ID for a specific user
func (s *goalService) GetGoalByID(ctx context.Context, userID, goalID string) (*GoalView, error) {
	goal, err := loadGoal(ctx, s.db, userID, goalID)
	if err != nil {
		return nil, err
	}
	v := goalView(*goal)
	return &v, nil
}

// Contribute adds delta to the saved amount. The increment happens in SQL so
// concurrent contributions are never lost.
func (s *goalService) Contribute(ctx context.Context, userID, goalID string, delta decimal.Decimal) (*GoalView, error) {
	if !delta.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Contribution must be greater than zero")
	}
	if err := checkMoney("amount", delta); err != nil {
		return nil, err
	}

	var goal *models.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The guard keeps the running total inside the column's range.
		result := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Where("saved_amount + CAST(? AS NUMERIC) < CAST(? AS NUMERIC)", delta, moneyLimit).
			Update("saved_amount", gorm.Expr("saved_amount + ?", delta))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			if _, err := loadGoal(ctx, tx, userID, goalID); err != nil {
				return err
			}
			return apperrors.WithMessage(apperrors.ErrInvalidAmount, "saved amount must stay below 1000000000000")
		}

		var loadErr error
		goal, loadErr = loadGoal(ctx, tx, userID, goalID)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.New(events.GoalContributed, userID, goal.ID, map[string]interface{}{
		"delta":        delta.String(),
		"saved_amount": goal.SavedAmount.String(),
	}))

	v := goalView(*goal)
	return &v, nil
}

// DeleteGoal removes a goal permanently.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
