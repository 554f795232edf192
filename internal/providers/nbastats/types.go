package nbastats

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMalformedResponse marks a payload that does not have the expected table layout.
var ErrMalformedResponse = errors.New("nbastats: malformed response")

type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
	ResultSet  *resultSet  `json:"resultSet"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// first returns the leading result set, which holds the primary table for every
// endpoint this client calls.
func (r statsResponse) first() (resultSet, error) {
	if len(r.ResultSets) > 0 {
		return r.ResultSets[0], nil
	}
	if r.ResultSet != nil {
		return *r.ResultSet, nil
	}
	return resultSet{}, fmt.Errorf("%w: no result sets", ErrMalformedResponse)
}

// table indexes a result set by header name.
type table struct {
	name string
	cols map[string]int
	rows [][]any
}

func newTable(rs resultSet, required ...string) (table, error) {
	t := table{name: rs.Name, cols: make(map[string]int, len(rs.Headers)), rows: rs.RowSet}
	for i, h := range rs.Headers {
		t.cols[h] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return table{}, fmt.Errorf("%w: %s missing column %s", ErrMalformedResponse, rs.Name, col)
		}
	}
	for i, row := range rs.RowSet {
		if len(row) != len(rs.Headers) {
			return table{}, fmt.Errorf("%w: %s row %d has %d values for %d headers", ErrMalformedResponse, rs.Name, i, len(row), len(rs.Headers))
		}
	}
	return t, nil
}

func (t table) value(row []any, col string) any {
	return row[t.cols[col]]
}

func (t table) str(row []any, col string) (string, error) {
	switch v := t.value(row, col).(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s.%s is %T, want string", ErrMalformedResponse, t.name, col, v)
	}
}

func (t table) float(row []any, col string) (float64, error) {
	switch v := t.value(row, col).(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s.%s: %v", ErrMalformedResponse, t.name, col, err)
		}
		return f, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s.%s is %T, want number", ErrMalformedResponse, t.name, col, v)
	}
}

// optionalFloat is float with a missing cell reported as NaN instead of 0.
func (t table) optionalFloat(row []any, col string) (float64, error) {
	if t.value(row, col) == nil {
		return math.NaN(), nil
	}
	return t.float(row, col)
}

// integer converts a numeric cell to int and rejects fractional or out-of-range values.
func (t table) integer(row []any, col string) (int, error) {
	switch v := t.value(row, col).(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %s.%s value %s is not an integer", ErrMalformedResponse, t.name, col, v)
		}
		return int(f), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s.%s value %q is not an integer", ErrMalformedResponse, t.name, col, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s.%s is %T, want integer", ErrMalformedResponse, t.name, col, v)
	}
}
