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
	"ledgerly/internal/pagination"
)

const maxCategoryLength = 64

// transactionService handles transaction-related business logic.
type transactionService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, publisher events.Publisher) TransactionServicer {
	return &transactionService{db: db, publisher: publisher}
}

// CreateTransaction records an income or expense. A blank category is
// guessed from the note; a supplied category is kept as is.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, input TransactionInput) (*models.Transaction, error) {
	if !input.Kind.Valid() {
		return nil, apperrors.ErrInvalidKind
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if err := checkMoney("amount", input.Amount); err != nil {
		return nil, err
	}

	note := normalizeNote(input.Note)
	category := strings.TrimSpace(input.Category)
	if category == "" {
		var text string
		if note != nil {
			text = *note
		}
		category = insights.Categorize(text)
	}
	if len(category) > maxCategoryLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be at most 64 characters")
	}

	occurredOn := input.OccurredOn
	if occurredOn.IsZero() {
		occurredOn = time.Now()
	}

	transaction := &models.Transaction{
		UserID:     userID,
		Amount:     input.Amount,
		Category:   category,
		Kind:       input.Kind,
		Note:       note,
		OccurredOn: models.DateOnly(occurredOn),
	}
	if err := s.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	publish(ctx, s.publisher, events.New(events.TransactionCreated, userID, transaction.ID, map[string]interface{}{
		"kind":        transaction.Kind,
		"amount":      transaction.Amount.String(),
		"category":    transaction.Category,
		"occurred_on": transaction.OccurredOn.Format("2006-01-02"),
	}))

	return transaction, nil
}

// ListTransactions retrieves a paginated, filtered list, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter).Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("occurred_on DESC").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("occurred_on >= ?", models.DateOnly(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("occurred_on <= ?", models.DateOnly(*f.ToDate))
	}
	if f.Kind != nil {
		q = q.Where("kind = ?", *f.Kind)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// GetTransactionsInRange returns every transaction dated within [from, to],
// oldest first, in the order the aggregator expects.
func (s *transactionService) GetTransactionsInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND occurred_on >= ? AND occurred_on <= ?", userID, models.DateOnly(from), models.DateOnly(to)).
		Order("occurred_on ASC").
		Order("created_at ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction permanently.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	publish(ctx, s.publisher, events.New(events.TransactionDeleted, userID, transactionID, nil))
	return nil
}

// normalizeNote trims a note and maps blank to nil.
func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
