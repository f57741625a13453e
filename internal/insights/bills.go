package insights

import (
	"math"
	"time"

	"ledgerly/internal/models"
)

// DueSoonDays is how close a due date must be before a bill is flagged.
const DueSoonDays = 7

// BillState is the badge shown next to a bill.
type BillState string

const (
	BillPaid      BillState = "paid"
	BillOverdue   BillState = "overdue"
	BillDueSoon   BillState = "due_soon"
	BillScheduled BillState = "scheduled"
)

// BillStatus describes a bill relative to a given day.
type BillStatus struct {
	State        BillState `json:"state"`
	DaysUntilDue int       `json:"days_until_due"`
}

// BillStatusAt classifies bill as of today. Days are whole calendar days,
// negative once the due date has passed.
func BillStatusAt(bill models.Bill, today time.Time) BillStatus {
	hours := models.DateOnly(bill.DueDate).Sub(models.DateOnly(today)).Hours()
	days := int(math.Ceil(hours / 24))

	st := BillStatus{DaysUntilDue: days}
	switch {
	case bill.Paid:
		st.State = BillPaid
	case days < 0:
		st.State = BillOverdue
	case days <= DueSoonDays:
		st.State = BillDueSoon
	default:
		st.State = BillScheduled
	}
	return st
}
