// Package element converts raw extracted values into their X12 element string
// form, driven by the element type from the segment definition tables.
package element

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mercury/internal/edi/models"
)

// ErrIncompatible marks a value that cannot be rendered under its declared
// element type. Callers wrap or inspect it with errors.Is.
var ErrIncompatible = errors.New("value incompatible with element type")

// Accepted layouts for DT elements beyond the canonical YYYYMMDD.
var dateLayouts = []string{"20060102", "2006-01-02", "01/02/2006", "2006/01/02"}

// Format renders value under the given element type. maxLength only applies
// to AN and ID types, which are truncated; numeric and date types are never
// padded or truncated. Pure: no side effects, same input same output.
func Format(value any, typ models.ElementType, maxLength int) (string, error) {
	switch typ {
	case models.TypeDate:
		return formatDate(value)
	case models.TypeNumericNoDecimal:
		return formatNumeric(value, 0)
	case models.TypeNumericTwoDecimal:
		return formatNumeric(value, 2)
	case models.TypeDecimal:
		return formatDecimal(value)
	case models.TypeAlphanumeric, models.TypeIdentifier:
		return formatText(value, maxLength)
	default:
		// Unknown types fall back to alphanumeric handling so a schema row
		// with an unexpected type code degrades instead of failing the build.
		return formatText(value, maxLength)
	}
}

func formatDate(value any) (string, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format("20060102"), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("20060102"), nil
			}
		}
		return "", fmt.Errorf("%w: %q is not a date", ErrIncompatible, v)
	default:
		return "", fmt.Errorf("%w: %T is not a date", ErrIncompatible, value)
	}
}

// formatNumeric renders an N0 or N2 element: the decimal value scaled to the
// implied number of fraction digits, with the decimal point removed.
// 362.34 under N0 becomes "36234"; 18.5 under N2 becomes "1850".
func formatNumeric(value any, impliedDecimals int) (string, error) {
	whole, frac, neg, err := decimalParts(value)
	if err != nil {
		return "", err
	}

	switch impliedDecimals {
	case 0:
		// Strip the point, keep the fraction digits that are present.
		frac = strings.TrimRight(frac, "0")
	default:
		// Scale to exactly impliedDecimals fraction digits, truncating extras.
		for len(frac) < impliedDecimals {
			frac += "0"
		}
		frac = frac[:impliedDecimals]
	}

	digits := strings.TrimLeft(whole+frac, "0")
	if digits == "" {
		digits = "0"
	}
	if neg {
		digits = "-" + digits
	}
	return digits, nil
}

func formatDecimal(value any) (string, error) {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not numeric", ErrIncompatible, v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T is not numeric", ErrIncompatible, value)
	}
}

func formatText(value any, maxLength int) (string, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return "", fmt.Errorf("%w: cannot render %T as text", ErrIncompatible, value)
	}
	if maxLength > 0 && len(s) > maxLength {
		s = s[:maxLength]
	}
	return s, nil
}

// decimalParts splits a numeric value into whole and fraction digit strings.
// Floats are rendered through strconv to avoid binary representation noise
// (0.29 stays "0.29", not "0.28999...").
func decimalParts(value any) (whole, frac string, neg bool, err error) {
	var s string
	switch v := value.(type) {
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case string:
		// Strings go through the float path so "3.40" and "1e3" carry the
		// same digits as their numeric equivalents.
		f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			return "", "", false, fmt.Errorf("%w: %q is not numeric", ErrIncompatible, v)
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return "", "", false, fmt.Errorf("%w: %T is not numeric", ErrIncompatible, value)
	}

	neg = strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:], neg, nil
	}
	return s, "", neg, nil
}
