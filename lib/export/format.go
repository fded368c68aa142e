package export

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// NumberFormat controls how numeric cells are written.
type NumberFormat struct {
	// thousands separators, "1234567" becomes "1,234,567"
	Grouping bool
	// round to at most this many digits after the decimal point, negative
	// means no rounding
	MaxFractionDigits int
}

type Options struct {
	// written for null or missing values
	Empty string
	// expand nested objects into dotted columns
	Flatten bool
	// nil writes numbers in their shortest decimal form
	Number *NumberFormat
}

// FormatCell turns a decoded JSON value into CSV cell text.
func FormatCell(value any, opts Options) (string, error) {
	switch v := value.(type) {
	case nil:
		return opts.Empty, nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return formatNumberLiteral(v, opts.Number), nil
	case int:
		return formatInt(int64(v), opts.Number), nil
	case int64:
		return formatInt(v, opts.Number), nil
	case float64:
		return formatFloat(v, opts.Number)
	default:
		// nested objects and arrays
		return compactJSON(v)
	}
}

func formatNumberLiteral(n json.Number, format *NumberFormat) string {
	literal := n.String()
	if !strings.ContainsAny(literal, ".eE") {
		i, err := n.Int64()
		if err == nil {
			return formatInt(i, format)
		}
	}
	f, err := n.Float64()
	if err != nil {
		return literal
	}
	out, err := formatFloat(f, format)
	if err != nil {
		return literal
	}
	return out
}

func formatInt(i int64, format *NumberFormat) string {
	if format != nil && format.Grouping {
		return humanize.Comma(i)
	}
	return strconv.FormatInt(i, 10)
}

const maxRoundable = 1e15

func formatFloat(f float64, format *NumberFormat) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrUnserializableValue
	}
	if format == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	// values this large have no fraction left to round
	if format.MaxFractionDigits >= 0 && math.Abs(f) < maxRoundable {
		scale := math.Pow(10, float64(format.MaxFractionDigits))
		if scaled := f * scale; !math.IsInf(scaled, 0) {
			f = math.Round(scaled) / scale
		}
	}
	if f == 0 {
		// avoids "-0"
		f = 0
	}
	if format.Grouping {
		return humanize.Commaf(f), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
