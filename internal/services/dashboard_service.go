package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/insights"
	"ledgerly/internal/models"
)

// dashboardService assembles the landing page from the other services.
type dashboardService struct {
	users        UserServicer
	transactions TransactionServicer
	budgets      BudgetServicer
	bills        BillServicer
	upcomingDays int
	recorder     WarningRecorder
}

// NewDashboardService creates a new DashboardServicer. recorder may be nil.
func NewDashboardService(users UserServicer, transactions TransactionServicer, budgets BudgetServicer, bills BillServicer, upcomingDays int, recorder WarningRecorder) DashboardServicer {
	return &dashboardService{
		users:        users,
		transactions: transactions,
		budgets:      budgets,
		bills:        bills,
		upcomingDays: upcomingDays,
		recorder:     recorder,
	}
}

// GetDashboard loads the period's data concurrently and summarizes it.
// Upcoming bills are counted from today, not from the start of the period.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string, period Period, today time.Time) (*Dashboard, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	first, last := period.Bounds()

	var (
		user         *models.User
		transactions []models.Transaction
		budgets      []models.Budget
		upcoming     []BillView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.GetUserByID(gctx, userID)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
				return nil
			}
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.GetTransactionsInRange(gctx, userID, first, last)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.GetBudgetsForPeriod(gctx, userID, period)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = s.bills.GetUpcomingBills(gctx, userID, today, s.upcomingDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	greeting := "User"
	if user != nil {
		greeting = user.DisplayName()
	}
	if upcoming == nil {
		upcoming = []BillView{}
	}

	summary := insights.Summarize(transactions, budgets)
	if s.recorder != nil {
		for _, w := range summary.Warnings {
			s.recorder.RecordWarning(string(w.Tier))
		}
	}

	return &Dashboard{
		GreetingName:  greeting,
		Period:        period,
		Summary:       summary,
		UpcomingBills: upcoming,
	}, nil
}
