package forecast

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// ErrDuplicateDate is returned when two observations share a calendar day.
	// Callers are expected to aggregate per day before forecasting.
	ErrDuplicateDate = errors.New("duplicate sales date")

	// ErrSpanTooLong is returned when the history covers more days than allowed.
	ErrSpanTooLong = errors.New("sales history span too long")
)

// Series is a dense daily sales series: Quantities[i] is the quantity sold
// on Start plus i days.
type Series struct {
	Start      time.Time
	Quantities []float64
}

// Len returns the number of days in the series.
func (s *Series) Len() int {
	return len(s.Quantities)
}

// Mean returns the arithmetic mean quantity per day.
func (s *Series) Mean() float64 {
	if len(s.Quantities) == 0 {
		return 0
	}
	var sum float64
	for _, q := range s.Quantities {
		sum += q
	}
	return sum / float64(len(s.Quantities))
}

// Densify sorts the observations and returns a series with exactly one entry
// per calendar day between the first and last date, filling missing days
// with zero. maxSpan limits the resulting length; zero means no limit.
func Densify(observations []Observation, maxSpan int) (*Series, error) {
	if len(observations) == 0 {
		return &Series{}, nil
	}

	sorted := make([]Observation, len(observations))
	for i, o := range observations {
		sorted[i] = Observation{Date: civilDay(o.Date), Quantity: o.Quantity}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	start := sorted[0].Date
	span := daysBetween(start, sorted[len(sorted)-1].Date) + 1
	if maxSpan > 0 && span > maxSpan {
		return nil, fmt.Errorf("%w: %d days (max %d)", ErrSpanTooLong, span, maxSpan)
	}

	quantities := make([]float64, span)
	prev := -1
	for _, o := range sorted {
		idx := daysBetween(start, o.Date)
		if idx == prev {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, o.Date.Format(dateLayout))
		}
		quantities[idx] = float64(o.Quantity)
		prev = idx
	}

	return &Series{Start: start, Quantities: quantities}, nil
}

// ParseDate parses an ISO-8601 calendar date. Full RFC 3339 timestamps are
// accepted too; only their date part is kept.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return civilDay(t), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return civilDay(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
}

// civilDay drops the clock and zone, keeping the calendar date as UTC midnight.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts calendar days between two UTC midnights. Unix seconds
// are used because time.Duration overflows past roughly 292 years.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
