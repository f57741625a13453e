package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/models"
	"ledgerly/internal/services"
)

// BillHandler handles bill reminder requests.
type BillHandler struct {
	billService  services.BillServicer
	auditService services.AuditServicer
	upcomingDays int
}

// NewBillHandler creates a new BillHandler. upcomingDays is the window used
// when /bills/upcoming is called without ?days.
func NewBillHandler(billService services.BillServicer, auditService services.AuditServicer, upcomingDays int) *BillHandler {
	return &BillHandler{billService: billService, auditService: auditService, upcomingDays: upcomingDays}
}

// CreateBillRequest represents the request payload for creating a bill.
type CreateBillRequest struct {
	Name    string            `json:"name" binding:"required,max=100"`
	Amount  decimal.Decimal   `json:"amount" swaggertype:"string" binding:"gte=0"`
	DueDate string            `json:"due_date" binding:"required,calendar_date" example:"2024-03-15"`
	Repeat  models.BillRepeat `json:"repeat" binding:"omitempty,bill_repeat" enums:"none,monthly,yearly"`
	Notes   *string           `json:"notes" binding:"omitempty,max=500"`
}

// CreateBill handles the creation of a new bill reminder.
// @Summary     Create a bill
// @Description Add a bill reminder. Repeat is informational; paying never schedules the next bill.
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} services.BillView "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), userID, services.BillInput{
		Name:    req.Name,
		Amount:  req.Amount,
		DueDate: due,
		Repeat:  req.Repeat,
		Notes:   req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "CREATE_BILL", "bill", bill.ID, c.ClientIP(),
		map[string]interface{}{"name": bill.Name, "amount": bill.Amount.String(), "due_date": req.DueDate})

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// ListBills handles listing all bills.
// @Summary     List bills
// @Description Get every bill, earliest due date first, each with its current status
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.BillView "Bills"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [get]
func (h *BillHandler) ListBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetUpcomingBills handles listing unpaid bills due soon.
// @Summary     Upcoming bills
// @Description Get unpaid bills due between today and today plus days, inclusive
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window in days (default 7)"
// @Success     200 {object} map[string][]services.BillView "Upcoming bills"
// @Failure     400 {object} ErrorResponse "Invalid days"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/upcoming [get]
func (h *BillHandler) GetUpcomingBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := h.upcomingDays
	if v := c.Query("days"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 || n > 366 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be between 0 and 366"))
			return
		}
		days = n
	}

	bills, err := h.billService.GetUpcomingBills(c.Request.Context(), userID, now(), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "bills": bills})
}

// GetBill handles retrieving a specific bill.
// @Summary     Get bill by ID
// @Description Get a specific bill by ID
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} services.BillView "Bill details"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(c.Request.Context(), userID, billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// MarkPaid handles marking a bill as paid.
// @Summary     Pay bill
// @Description Mark a bill as paid
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} services.BillView "Paid bill"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     409 {object} ErrorResponse "Bill already paid"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/pay [post]
func (h *BillHandler) MarkPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkPaid(c.Request.Context(), userID, billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "PAY_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete bill
// @Description Delete a bill reminder
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} map[string]string "Bill deleted"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), userID, billID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, "DELETE_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
