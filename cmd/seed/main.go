// Command seed fills a development database with demo users and a few
// months of activity for each of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"ledgerly/internal/config"
	"ledgerly/internal/database"
	"ledgerly/internal/events"
	"ledgerly/internal/logger"
	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

const demoPassword = "password123"

// Notes are left uncategorized so the categorizer picks the category.
var expenseNotes = []string{
	"coffee with team", "lunch meal", "restaurant dinner", "grab to office",
	"train ticket", "fuel top up", "monthly rent", "shopee order",
	"mall weekend", "electric bill", "internet wifi", "phone plan",
	"crypto buy", "mutual fund", "gift for mom", "gym membership",
}

var budgetCategories = []string{"food", "travel", "shopping", "utilities"}

type seeder struct {
	faker        *gofakeit.Faker
	users        services.UserServicer
	transactions services.TransactionServicer
	budgets      services.BudgetServicer
	bills        services.BillServicer
	goals        services.GoalServicer
	today        time.Time
}

func main() {
	users := flag.Int("users", 3, "number of demo users to create")
	months := flag.Int("months", 3, "months of history per user, including the current one")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	flag.Parse()

	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(*users, *months, *seed); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run(userCount, months int, seed int64) error {
	if userCount < 1 || months < 1 {
		return fmt.Errorf("-users and -months must be at least 1")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return err
	}

	db := dbManager.DB()
	publisher := events.NopPublisher{}
	transactions := services.NewTransactionService(db, publisher)

	s := &seeder{
		faker:        gofakeit.New(seed),
		users:        services.NewUserService(db),
		transactions: transactions,
		budgets:      services.NewBudgetService(db, transactions),
		bills:        services.NewBillService(db, publisher),
		goals:        services.NewGoalService(db, publisher),
		today:        time.Now().UTC(),
	}

	ctx := context.Background()
	for i := 0; i < userCount; i++ {
		user, err := s.seedUser(ctx, months)
		if err != nil {
			return err
		}
		logger.Get().Infow("Seeded user", "email", user.Email, "months", months)
	}
	logger.Get().Infof("Seeded %d user(s); password is %q", userCount, demoPassword)
	return nil
}

func (s *seeder) seedUser(ctx context.Context, months int) (*models.User, error) {
	first, last := s.faker.FirstName(), s.faker.LastName()
	email := strings.ToLower(fmt.Sprintf("%s.%s.%d@example.com", first, last, s.faker.Number(100, 9999)))

	user, err := s.users.CreateUser(ctx, email, demoPassword, first, last)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}

	current := services.PeriodOf(s.today)
	for m := months - 1; m >= 0; m-- {
		start, _ := current.Bounds()
		period := services.PeriodOf(start.AddDate(0, -m, 0))
		if err := s.seedMonth(ctx, user.ID, period); err != nil {
			return nil, err
		}
	}

	if err := s.seedBills(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := s.seedGoals(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *seeder) seedMonth(ctx context.Context, userID string, period services.Period) error {
	first, last := period.Bounds()
	if last.After(s.today) {
		last = models.DateOnly(s.today)
	}
	days := int(last.Sub(first).Hours()/24) + 1

	salary := s.money(3000, 6000)
	if _, err := s.transactions.CreateTransaction(ctx, userID, services.TransactionInput{
		Kind:       models.TransactionKindIncome,
		Amount:     salary,
		Category:   "salary",
		Note:       strPtr("monthly salary"),
		OccurredOn: first,
	}); err != nil {
		return fmt.Errorf("seed salary: %w", err)
	}

	for i, n := 0, s.faker.Number(15, 35); i < n; i++ {
		note := s.faker.RandomString(expenseNotes)
		input := services.TransactionInput{
			Kind:       models.TransactionKindExpense,
			Amount:     s.money(3, 250),
			Note:       &note,
			OccurredOn: first.AddDate(0, 0, s.faker.Number(0, days-1)),
		}
		if _, err := s.transactions.CreateTransaction(ctx, userID, input); err != nil {
			return fmt.Errorf("seed expense: %w", err)
		}
	}

	for _, category := range budgetCategories {
		if _, err := s.budgets.CreateBudget(ctx, userID, period, category, s.money(200, 900)); err != nil {
			return fmt.Errorf("seed budget %s: %w", category, err)
		}
	}
	return nil
}

func (s *seeder) seedBills(ctx context.Context, userID string) error {
	bills := []services.BillInput{
		{Name: "Rent", Amount: s.money(800, 1500), Repeat: models.BillRepeatMonthly},
		{Name: "Electricity", Amount: s.money(40, 120), Repeat: models.BillRepeatMonthly},
		{Name: s.faker.Company() + " subscription", Amount: s.money(5, 30), Repeat: models.BillRepeatMonthly},
		{Name: "Insurance", Amount: s.money(300, 900), Repeat: models.BillRepeatYearly},
	}
	for _, b := range bills {
		b.DueDate = s.today.AddDate(0, 0, s.faker.Number(-3, 20))
		view, err := s.bills.CreateBill(ctx, userID, b)
		if err != nil {
			return fmt.Errorf("seed bill %s: %w", b.Name, err)
		}
		if view.DueDate.Before(s.today) && s.faker.Bool() {
			if _, err := s.bills.MarkPaid(ctx, userID, view.ID); err != nil {
				return fmt.Errorf("pay bill %s: %w", b.Name, err)
			}
		}
	}
	return nil
}

func (s *seeder) seedGoals(ctx context.Context, userID string) error {
	for _, name := range []string{"Emergency fund", s.faker.Country() + " trip"} {
		target := s.money(1000, 10000)
		deadline := s.today.AddDate(0, s.faker.Number(3, 24), 0)
		goal, err := s.goals.CreateGoal(ctx, userID, services.GoalInput{
			Name:         name,
			TargetAmount: target,
			TargetDate:   &deadline,
		})
		if err != nil {
			return fmt.Errorf("seed goal %s: %w", name, err)
		}
		for i, n := 0, s.faker.Number(1, 4); i < n; i++ {
			if _, err := s.goals.Contribute(ctx, userID, goal.ID, s.money(50, 500)); err != nil {
				return fmt.Errorf("contribute to %s: %w", name, err)
			}
		}
	}
	return nil
}

// money returns a positive amount with two decimal places.
func (s *seeder) money(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(s.faker.Price(min, max)).Round(2)
}

func strPtr(v string) *string {
	return &v
}
