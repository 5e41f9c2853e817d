package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BartekS5/loadplan/pkg/models"
)

// ConvertCell converts one scalar cell value to the Go value for dataType.
// List types are converted element by element by the caller.
func ConvertCell(raw string, dataType models.DataType) (interface{}, error) {
	val := strings.TrimSpace(raw)
	switch dataType {
	case models.TypeDouble:
		return ConvertToFloat(val)
	case models.TypeString, models.TypeListOfString, "":
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported data type %q", dataType)
	}
}

// SplitList splits a list cell on delimiter, trimming each part and dropping
// empty ones.
func SplitList(raw, delimiter string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if delimiter == "" {
		return []string{strings.TrimSpace(raw)}
	}
	parts := strings.Split(raw, delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConvertToFloat parses a finite double. NaN and infinities are rejected
// because encoding/json cannot write them.
func ConvertToFloat(val string) (float64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to double: %w", val, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %q to double: not a finite number", val)
	}
	return f, nil
}
