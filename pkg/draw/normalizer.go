package draw

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// InvalidDrawError reports a record that could not be normalized.
type InvalidDrawError struct {
	RecordID string
	Values   []any
	Err      error
}

func (e *InvalidDrawError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("record %v: %v", e.Values, e.Err)
	}
	return fmt.Sprintf("record %q: %v", e.RecordID, e.Err)
}

// Unwrap exposes the underlying cause, which always wraps domain.ErrInvalidDrawFormat.
func (e *InvalidDrawError) Unwrap() error {
	return e.Err
}

// Normalizer validates records against a domain.
type Normalizer struct {
	domain domain.Domain
}

// NewNormalizer creates a normalizer for d.
func NewNormalizer(d domain.Domain) *Normalizer {
	return &Normalizer{domain: d}
}

// Domain returns the domain records are validated against.
func (n *Normalizer) Domain() domain.Domain {
	return n.domain
}

// Normalize converts rec into an ascending, fixed-arity Draw.
func (n *Normalizer) Normalize(rec Record) (domain.Draw, error) {
	numbers := make([]int, len(rec.Values))
	for i, v := range rec.Values {
		num, err := toInt(v)
		if err != nil {
			return domain.Draw{}, n.invalid(rec, fmt.Errorf("%w: value %d: %v", domain.ErrInvalidDrawFormat, i, err))
		}
		numbers[i] = num
	}

	d, err := domain.NewDraw(n.domain, numbers)
	if err != nil {
		return domain.Draw{}, n.invalid(rec, err)
	}
	return d, nil
}

// NormalizeAll normalizes every record, stopping at the first failure.
func (n *Normalizer) NormalizeAll(records []Record) ([]domain.Draw, error) {
	draws := make([]domain.Draw, 0, len(records))
	for i, rec := range records {
		d, err := n.Normalize(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		draws = append(draws, d)
	}
	return draws, nil
}

func (n *Normalizer) invalid(rec Record, err error) error {
	return &InvalidDrawError{RecordID: rec.Label(), Values: rec.Values, Err: err}
}

var errNotInteger = errors.New("not an integer")

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint:
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		if x > math.MaxInt32 {
			return 0, fmt.Errorf("%d overflows", x)
		}
		return int(x), nil
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q: %w", x.String(), errNotInteger)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%q: %w", x, errNotInteger)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%T: %w", v, errNotInteger)
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v: %w", f, errNotInteger)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%v overflows", f)
	}
	return int(f), nil
}
