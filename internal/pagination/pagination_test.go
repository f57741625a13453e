package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"empty", PageRequest{}, PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{"kept", PageRequest{Page: 3, PageSize: 10}, PageRequest{Page: 3, PageSize: 10}},
		{"capped", PageRequest{Page: 1, PageSize: 1000}, PageRequest{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Defaults()
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, PageRequest{Page: 2, PageSize: 10}, 21)

	if resp.Data == nil {
		t.Error("expected non-nil data")
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if !resp.HasMore {
		t.Error("expected has_more on page 2 of 3")
	}

	last := NewPageResponse([]int{1}, PageRequest{Page: 3, PageSize: 10}, 21)
	if last.HasMore {
		t.Error("expected no more pages after the last one")
	}
	if offset := (PageRequest{Page: 3, PageSize: 10}).Offset(); offset != 20 {
		t.Errorf("expected offset 20, got %d", offset)
	}
}
