package draw

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Record is one raw historical draw as supplied by an external source.
type Record struct {
	ID     string    `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Date   time.Time `json:"date,omitempty" yaml:"date,omitempty" mapstructure:"date"`
	Values []any     `json:"numbers" yaml:"numbers" mapstructure:"numbers"`
}

// Label identifies the record in error messages: its ID, else its date.
func (r Record) Label() string {
	if r.ID != "" {
		return r.ID
	}
	if !r.Date.IsZero() {
		return r.Date.Format(time.DateOnly)
	}
	return ""
}

// NewRecord is a convenience constructor for already-typed numbers.
func NewRecord(id string, numbers ...int) Record {
	values := make([]any, len(numbers))
	for i, n := range numbers {
		values[i] = n
	}
	return Record{ID: id, Values: values}
}

// DecodeRecord decodes a loosely typed row (e.g. a decoded JSON object or a
// database row map) into a Record.
//
// The numbers are read from the "numbers" key. Rows in the flat
// "n1".."nN" layout are accepted as well.
func DecodeRecord(raw map[string]any) (Record, error) {
	row := raw
	if _, ok := raw["numbers"]; !ok {
		if flat := flatNumbers(raw); len(flat) > 0 {
			row = make(map[string]any, len(raw)+1)
			for k, v := range raw {
				row[k] = v
			}
			row["numbers"] = flat
		}
	}

	var rec Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringToDateHook),
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to create record decoder: %w", err)
	}
	if err := decoder.Decode(row); err != nil {
		return Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// flatNumbers collects n1, n2, ... columns in index order.
func flatNumbers(raw map[string]any) []any {
	type column struct {
		idx   int
		value any
	}
	var cols []column
	for k, v := range raw {
		if len(k) < 2 || (k[0] != 'n' && k[0] != 'N') {
			continue
		}
		idx, err := strconv.Atoi(k[1:])
		if err != nil || idx < 1 {
			continue
		}
		cols = append(cols, column{idx: idx, value: v})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].idx < cols[j].idx })

	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = c.value
	}
	return values
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, "02/01/2006"}

func stringToDateHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}
