package forecast

// Thresholds holds the business constants used to classify a forecast.
type Thresholds struct {
	// TrendSlope is the absolute slope (quantity/day) above which a trend
	// counts as increasing or decreasing.
	TrendSlope float64
	// HorizonDays is the number of days projected for the monthly demand.
	HorizonDays int

	CriticalDays  float64
	LowStockDays  float64
	OverstockDays float64

	// NoSalesCoverDays is reported as days of cover when nothing sells.
	NoSalesCoverDays float64

	// MaxSpanDays caps the densified history length. Zero disables the cap.
	MaxSpanDays int
}

// DefaultThresholds returns the standard classification constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendSlope:       0.1,
		HorizonDays:      30,
		CriticalDays:     7,
		LowStockDays:     15,
		OverstockDays:    60,
		NoSalesCoverDays: 999,
		MaxSpanDays:      3660,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.TrendSlope <= 0 {
		t.TrendSlope = d.TrendSlope
	}
	if t.HorizonDays <= 0 {
		t.HorizonDays = d.HorizonDays
	}
	if t.CriticalDays <= 0 {
		t.CriticalDays = d.CriticalDays
	}
	if t.LowStockDays <= 0 {
		t.LowStockDays = d.LowStockDays
	}
	if t.OverstockDays <= 0 {
		t.OverstockDays = d.OverstockDays
	}
	if t.NoSalesCoverDays <= 0 {
		t.NoSalesCoverDays = d.NoSalesCoverDays
	}
	if t.MaxSpanDays < 0 {
		t.MaxSpanDays = 0
	}
	return t
}

func (t Thresholds) classifyTrend(slope float64) Trend {
	switch {
	case slope > t.TrendSlope:
		return TrendIncreasing
	case slope < -t.TrendSlope:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// classifyRisk keeps the comparator order fixed: critical and low stock use
// strict less-than, overstock strict greater-than.
func (t Thresholds) classifyRisk(daysOfCover float64) RiskLevel {
	switch {
	case daysOfCover < t.CriticalDays:
		return RiskCritical
	case daysOfCover < t.LowStockDays:
		return RiskLowStock
	case daysOfCover > t.OverstockDays:
		return RiskOverstock
	default:
		return RiskSafe
	}
}
