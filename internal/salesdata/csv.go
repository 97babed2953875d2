package salesdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/andresuchdata/inventory-predictor/backend-go/internal/domain"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{"date", "quantity"}

// ReadCSV parses a sales history export. The header must contain "date" and
// "quantity" columns (any case, any position); other columns are ignored.
func ReadCSV(r io.Reader) ([]domain.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := colMap[col]; !dup {
			colMap[col] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	getValue := func(record []string, col string) string {
		if idx := colMap[col]; idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	records := make([]domain.SalesRecord, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		qty, err := parseQuantity(getValue(record, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, domain.SalesRecord{
			Date:     getValue(record, "date"),
			Quantity: qty,
		})
	}

	return records, nil
}

// parseQuantity accepts integers and integral decimals such as "3.0", which
// spreadsheet exports commonly produce.
func parseQuantity(val string) (int, error) {
	if val == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid quantity %q: expected an integer", val)
	}
	return int(f), nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
