package form

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Bind validates body against fields in declaration order and stores each
// accepted value into its target.
//
// Binding stops at the first failing field and returns a *Rejection. Fields
// bound before the failure keep their values. Declaration problems are
// reported for the whole list before any value is read and wrap
// ErrConfiguration.
func Bind(fields []*Field, body url.Values) error {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f == nil {
			return configError(strconv.Itoa(i), "nil field")
		}
		if f.err != nil {
			return f.err
		}
		if _, dup := seen[f.name]; dup {
			return configError(f.name, "declared twice")
		}
		seen[f.name] = struct{}{}
		f.assigned = false
	}

	for _, f := range fields {
		values, present := body[f.name]
		if !present || len(values) == 0 {
			if f.optional {
				continue
			}
			return f.reject(ParamRequired)
		}

		raw := values[0]
		if f.optional && strings.TrimSpace(raw) == "" {
			continue
		}

		if rej := f.bind(raw); rej != nil {
			return rej
		}
		f.assigned = true
	}

	return nil
}

func (f *Field) bind(raw string) *Rejection {
	switch f.kind {
	case KindString:
		if f.sanitize {
			raw = strictPolicy.Sanitize(raw)
		}
		if !f.pattern.MatchString(raw) {
			return f.reject(ParamPattern)
		}
		f.setString(raw)
		return nil

	case KindInteger:
		n, rej := f.parseInt(raw)
		if rej != nil {
			return rej
		}
		if !f.inBounds(float64(n)) || !f.setInt(n) {
			return f.reject(ParamSize)
		}
		return nil

	case KindFloat:
		v, rej := f.parseFloat(raw)
		if rej != nil {
			return rej
		}
		if !f.inBounds(v) {
			return f.reject(ParamSize)
		}
		f.setFloat(v)
		return nil

	default:
		f.setBool(truthy(raw))
		return nil
	}
}

func (f *Field) coerce(raw string) *Rejection {
	switch f.kind {
	case KindString:
		f.setString(raw)
	case KindInteger:
		n, rej := f.parseInt(raw)
		if rej != nil {
			return rej
		}
		if !f.setInt(n) {
			return f.reject(ParamSize)
		}
	case KindFloat:
		v, rej := f.parseFloat(raw)
		if rej != nil {
			return rej
		}
		f.setFloat(v)
	default:
		f.setBool(truthy(raw))
	}
	return nil
}

// parseInt accepts any numeric text with an integral value, so "3.0" and
// "1e1" bind while "2.5" is PARAM_TYPE.
func (f *Field) parseInt(raw string) (int64, *Rejection) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, f.reject(ParamSize)
	}

	v, rej := f.parseFloat(raw)
	if rej != nil {
		return 0, rej
	}
	if v != math.Trunc(v) {
		return 0, f.reject(ParamType)
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, f.reject(ParamSize)
	}
	return int64(v), nil
}

func (f *Field) parseFloat(raw string) (float64, *Rejection) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, f.reject(ParamSize)
		}
		return 0, f.reject(ParamType)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, f.reject(ParamType)
	}
	return v, nil
}

func (f *Field) inBounds(v float64) bool {
	if f.min != nil && v < *f.min {
		return false
	}
	if f.max != nil && v > *f.max {
		return false
	}
	return true
}

func (f *Field) reject(code string) *Rejection {
	return &Rejection{Code: code, Field: f.name}
}

// truthy coerces any submitted value to a boolean.
// Empty, "0" and the usual negative words are false.
func truthy(raw string) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "off", "no", "n":
		return false
	}
	return true
}
