package payments

import (
	"math"
	"testing"

	"github.com/myhome/console/internal/backend"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	pagos := []backend.PagoDespensa{
		{ID: 1, FechadePago: "2025-01-15", Monto: 75},
		{ID: 2, FechadePago: "2025-01-31", Monto: 25},
		{ID: 3, FechadePago: "2025-03-01T10:00:00Z", Monto: 85},
		{ID: 4, FechadePago: "2025-12-31T23:30:00-03:00", Monto: 40},
		{ID: 5, FechadePago: "sin fecha", Monto: 15},
	}

	got := Summarize(pagos)
	if got.Monthly[0] != 100 {
		t.Fatalf("January = %v, want 100", got.Monthly[0])
	}
	if got.Monthly[2] != 85 {
		t.Fatalf("March = %v, want 85", got.Monthly[2])
	}
	if got.Monthly[11] != 40 {
		t.Fatalf("December = %v, want 40", got.Monthly[11])
	}
	if got.Total != 240 {
		t.Fatalf("Total = %v, want 240", got.Total)
	}
	if math.Abs(got.Average-20) > 1e-9 {
		t.Fatalf("Average = %v, want 20", got.Average)
	}
	if got.Count != 5 || got.Undated != 1 {
		t.Fatalf("Count, Undated = %d, %d, want 5, 1", got.Count, got.Undated)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	got := Summarize(nil)
	if got.Total != 0 || got.Average != 0 || got.Count != 0 {
		t.Fatalf("Summarize(nil) = %+v", got)
	}
}

func TestBarPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   float64
	}{
		{amount: -5, want: 0},
		{amount: 0, want: 0},
		{amount: 1250, want: 50},
		{amount: 2500, want: 100},
		{amount: 9000, want: 100},
	}
	for _, tc := range tests {
		if got := BarPercent(tc.amount); got != tc.want {
			t.Fatalf("BarPercent(%v) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

func TestFormatARS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "$ 0,00"},
		{amount: 950, want: "$ 950,00"},
		{amount: 12345.5, want: "$ 12.345,50"},
	}
	for _, tc := range tests {
		if got := FormatARS(tc.amount); got != tc.want {
			t.Fatalf("FormatARS(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
