package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRiskLevel is returned when a risk level filter names no known level.
var ErrUnknownRiskLevel = errors.New("unknown risk level")

var riskLevelLabels = map[string]string{
	"critical":  "Critical",
	"low_stock": "Low Stock",
	"safe":      "Safe",
	"overstock": "Overstock",
	"unknown":   "Unknown",
}

var riskLevelAliases = map[string]string{
	"low":       "low_stock",
	"lowstock":  "low_stock",
	"low stock": "low_stock",
	"low-stock": "low_stock",
	"over":      "overstock",
}

// RiskLevelLabel returns a human-readable label for a risk level code.
func RiskLevelLabel(level string) string {
	if label, ok := riskLevelLabels[level]; ok {
		return label
	}

	return "Unknown"
}

// ParseRiskLevel returns the risk level code for a label (case-insensitive).
func ParseRiskLevel(label string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if alias, ok := riskLevelAliases[key]; ok {
		key = alias
	}
	if _, ok := riskLevelLabels[key]; ok {
		return key, true
	}

	return "", false
}

// ParseRiskLevels parses a comma separated list, dropping unknown and
// duplicate entries. A non-blank list with no known level is an error so
// that a typo never widens a filter to every level.
func ParseRiskLevels(raw string) ([]string, error) {
	var levels []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		level, ok := ParseRiskLevel(part)
		if !ok {
			continue
		}
		if _, dup := seen[level]; dup {
			continue
		}
		seen[level] = struct{}{}
		levels = append(levels, level)
	}
	if len(levels) == 0 && strings.Trim(raw, " ,") != "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRiskLevel, raw)
	}
	return levels, nil
}
