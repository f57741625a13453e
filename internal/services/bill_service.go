package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/events"
	"ledgerly/internal/insights"
	"ledgerly/internal/models"
)

// billService handles bill reminders. Bills never recur automatically:
// Repeat is informational and paying a bill only flips its Paid flag.
type billService struct {
	db        *gorm.DB
	publisher events.Publisher
	now       func() time.Time
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB, publisher events.Publisher) BillServicer {
	return &billService{db: db, publisher: publisher, now: func() time.Time { return time.Now().UTC() }}
}

func (s *billService) view(b models.Bill) BillView {
	return BillView{Bill: b, Status: insights.BillStatusAt(b, s.now())}
}

func (s *billService) views(bills []models.Bill) []BillView {
	out := make([]BillView, 0, len(bills))
	for _, b := range bills {
		out = append(out, s.view(b))
	}
	return out
}

// CreateBill adds a bill reminder.
func (s *billService) CreateBill(ctx context.Context, userID string, input BillInput) (*BillView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if input.Amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Amount cannot be negative")
	}
	if err := checkMoney("amount", input.Amount); err != nil {
		return nil, err
	}
	if input.DueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}
	repeat := input.Repeat
	if repeat == "" {
		repeat = models.BillRepeatNone
	}
	if !repeat.Valid() {
		return nil, apperrors.ErrInvalidRepeat
	}

	bill := models.Bill{
		UserID:  userID,
		Name:    name,
		Amount:  input.Amount,
		DueDate: models.DateOnly(input.DueDate),
		Repeat:  repeat,
		Notes:   normalizeNote(input.Notes),
	}
	if err := s.db.WithContext(ctx).Create(&bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	v := s.view(bill)
	return &v, nil
}

// ListBills returns all bills, earliest due first.
func (s *billService) ListBills(ctx context.Context, userID string) ([]BillView, error) {
	var bills []models.Bill
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&bills).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.views(bills), nil
}

func (s *billService) getBill(ctx context.Context, userID, billID string) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", billID, userID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// GetBillByID retrieves a bill by ID for a specific user
func (s *billService) GetBillByID(ctx context.Context, userID, billID string) (*BillView, error) {
	bill, err := s.getBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	v := s.view(*bill)
	return &v, nil
}

// MarkPaid flags an unpaid bill as paid.
func (s *billService) MarkPaid(ctx context.Context, userID, billID string) (*BillView, error) {
	bill, err := s.getBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Paid {
		return nil, apperrors.ErrBillAlreadyPaid
	}

	// The paid = false guard keeps two concurrent requests from both succeeding.
	result := s.db.WithContext(ctx).Model(&models.Bill{}).
		Where("id = ? AND user_id = ? AND paid = ?", billID, userID, false).
		Update("paid", true)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrBillAlreadyPaid
	}
	bill.Paid = true

	publish(ctx, s.publisher, events.New(events.BillPaid, userID, bill.ID, map[string]interface{}{
		"name":     bill.Name,
		"amount":   bill.Amount.String(),
		"due_date": bill.DueDate.Format("2006-01-02"),
		"repeat":   bill.Repeat,
	}))

	v := s.view(*bill)
	return &v, nil
}

// DeleteBill removes a bill permanently.
func (s *billService) DeleteBill(ctx context.Context, userID, billID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", billID, userID).Delete(&models.Bill{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBillNotFound
	}
	return nil
}

// GetUpcomingBills returns unpaid bills due between from and from+days
// inclusive, earliest first.
func (s *billService) GetUpcomingBills(ctx context.Context, userID string, from time.Time, days int) ([]BillView, error) {
	if days < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days cannot be negative")
	}
	start := models.DateOnly(from)
	end := start.AddDate(0, 0, days)

	var bills []models.Bill
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND paid = ? AND due_date >= ? AND due_date <= ?", userID, false, start, end).
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&bills).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.views(bills), nil
}
