// Package payments aggregates recurring payments for the payments dashboard.
package payments

import (
	"strings"
	"time"

	"github.com/myhome/console/internal/backend"
)

// ChartMax is the fixed top of the monthly bar chart.
const ChartMax = 2500.0

// Months is the number of buckets in a Summary.
const Months = 12

// Summary is the dashboard view of a payment list.
type Summary struct {
	// Monthly holds totals by calendar month, January first.
	Monthly [Months]float64
	// Total sums every payment, including those with unreadable dates.
	Total float64
	// Average is Total spread over twelve months.
	Average float64
	// Count is the number of payments.
	Count int
	// Undated counts payments whose date could not be read.
	Undated int
}

// Summarize buckets payments by the month of fechade_pago.
func Summarize(pagos []backend.PagoDespensa) Summary {
	var s Summary
	for _, p := range pagos {
		amount := float64(p.Monto)
		s.Total += amount
		s.Count++
		month, ok := paymentMonth(p.FechadePago)
		if !ok {
			s.Undated++
			continue
		}
		s.Monthly[month-1] += amount
	}
	s.Average = s.Total / Months
	return s
}

// BarPercent scales a monthly total against ChartMax, capped at 100.
func BarPercent(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	pct := amount / ChartMax * 100
	if pct > 100 {
		return 100
	}
	return pct
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// paymentMonth reads the calendar month of a backend date as written,
// without shifting time zones.
func paymentMonth(value string) (time.Month, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}

// ParseDate reads a backend date for display.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
