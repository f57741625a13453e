package insights

import (
	"testing"
	"time"

	"ledgerly/internal/models"
)

func TestBillStatusAt(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		due   string
		paid  bool
		state BillState
		days  int
	}{
		{"overdue", "2025-03-09", false, BillOverdue, -1},
		{"due_today", "2025-03-10", false, BillDueSoon, 0},
		{"due_in_seven", "2025-03-17", false, BillDueSoon, 7},
		{"due_in_eight", "2025-03-18", false, BillScheduled, 8},
		{"paid_overdue", "2025-03-01", true, BillPaid, -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := BillStatusAt(models.Bill{DueDate: day(tt.due), Paid: tt.paid}, today)
			if st.State != tt.state {
				t.Errorf("expected state %s, got %s", tt.state, st.State)
			}
			if st.DaysUntilDue != tt.days {
				t.Errorf("expected %d days, got %d", tt.days, st.DaysUntilDue)
			}
		})
	}
}
