package form

import (
	"regexp"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultPattern matches any non-empty string.
const DefaultPattern = `(?s)^.+$`

var (
	defaultPattern = regexp.MustCompile(DefaultPattern)
	strictPolicy   = bluemonday.StrictPolicy()
)

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Field is a declarative binding between a submitted body field and a typed target.
// Fields are built per request by the page that owns the targets.
type Field struct {
	name     string
	kind     Kind
	optional bool
	pattern  *regexp.Regexp
	min      *float64
	max      *float64
	sanitize bool

	setString func(string)
	setInt    func(int64) bool
	setFloat  func(float64)
	setBool   func(bool)
	show      func() string

	assigned bool
	err      error
}

// Option configures a Field.
type Option func(*Field)

// Optional marks the field as not required.
// An absent or blank optional field is skipped.
func Optional() Option {
	return func(f *Field) {
		f.optional = true
	}
}

// Pattern sets the regular expression a string value must match.
func Pattern(expr string) Option {
	return func(f *Field) {
		re, err := regexp.Compile(expr)
		if err != nil {
			f.fail(configError(f.name, "bad pattern %q: %v", expr, err))
			return
		}
		f.pattern = re
	}
}

// Min sets the inclusive lower bound of a numeric field.
func Min(v float64) Option {
	return func(f *Field) {
		f.min = &v
	}
}

// Max sets the inclusive upper bound of a numeric field.
func Max(v float64) Option {
	return func(f *Field) {
		f.max = &v
	}
}

// Sanitize strips all HTML from a string value before pattern matching.
func Sanitize() Option {
	return func(f *Field) {
		f.sanitize = true
	}
}

// String declares a string field bound to target.
func String(name string, target *string, opts ...Option) *Field {
	f := newField(name, KindString, opts)
	if target == nil {
		f.fail(configError(name, "nil target"))
		return f
	}
	f.setString = func(v string) { *target = v }
	f.show = func() string { return *target }
	return f
}

// Int declares an integer field bound to target. Any numeric text with an
// integral value binds ("3", "3.0", "1e1"); fractions are PARAM_TYPE.
// Values that overflow the target type are rejected with PARAM_SIZE.
func Int[T integer](name string, target *T, opts ...Option) *Field {
	f := newField(name, KindInteger, opts)
	if target == nil {
		f.fail(configError(name, "nil target"))
		return f
	}
	f.setInt = func(n int64) bool {
		v := T(n)
		if int64(v) != n {
			return false
		}
		*target = v
		return true
	}
	f.show = func() string { return strconv.FormatInt(int64(*target), 10) }
	return f
}

// Float declares a floating point field bound to target.
func Float(name string, target *float64, opts ...Option) *Field {
	f := newField(name, KindFloat, opts)
	if target == nil {
		f.fail(configError(name, "nil target"))
		return f
	}
	f.setFloat = func(v float64) { *target = v }
	f.show = func() string { return strconv.FormatFloat(*target, 'f', -1, 64) }
	return f
}

// Bool declares a boolean field bound to target.
func Bool(name string, target *bool, opts ...Option) *Field {
	f := newField(name, KindBoolean, opts)
	if target == nil {
		f.fail(configError(name, "nil target"))
		return f
	}
	f.setBool = func(v bool) { *target = v }
	f.show = func() string { return strconv.FormatBool(*target) }
	return f
}

// Declare builds a field from a type tag, for declarations loaded from data.
// The tag accepts string, integer, int, float, double, boolean and bool.
// A tag that does not match the target's type yields a field that fails Bind
// with ErrConfiguration.
func Declare(name, tag string, target any, opts ...Option) *Field {
	kind, err := ParseKind(tag)
	if err != nil {
		return &Field{name: name, err: configError(name, "%v", err)}
	}

	var f *Field
	switch t := target.(type) {
	case *string:
		f = String(name, t, opts...)
	case *int:
		f = Int(name, t, opts...)
	case *int32:
		f = Int(name, t, opts...)
	case *int64:
		f = Int(name, t, opts...)
	case *float64:
		f = Float(name, t, opts...)
	case *bool:
		f = Bool(name, t, opts...)
	default:
		return &Field{name: name, kind: kind, err: configError(name, "unsupported target %T", target)}
	}
	if f.kind != kind {
		f.fail(configError(name, "kind %s does not match target %T", kind, target))
	}
	return f
}

func newField(name string, kind Kind, opts []Option) *Field {
	f := &Field{name: name, kind: kind}
	if name == "" {
		f.fail(configError(name, "empty name"))
	}
	for _, opt := range opts {
		opt(f)
	}
	f.validate()
	return f
}

func (f *Field) validate() {
	if f.pattern != nil && f.kind != KindString {
		f.fail(configError(f.name, "pattern on %s field", f.kind))
	}
	if f.sanitize && f.kind != KindString {
		f.fail(configError(f.name, "sanitize on %s field", f.kind))
	}
	if (f.min != nil || f.max != nil) && !f.kind.numeric() {
		f.fail(configError(f.name, "bounds on %s field", f.kind))
	}
	if f.min != nil && f.max != nil && *f.min > *f.max {
		f.fail(configError(f.name, "min %v greater than max %v", *f.min, *f.max))
	}
	if f.kind == KindString && f.pattern == nil {
		f.pattern = defaultPattern
	}
}

func (f *Field) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// Name returns the body field name.
func (f *Field) Name() string {
	return f.name
}

// Kind returns the declared kind.
func (f *Field) Kind() Kind {
	return f.kind
}

// IsOptional reports whether the field may be absent.
func (f *Field) IsOptional() bool {
	return f.optional
}

// Err returns the declaration error, if any.
func (f *Field) Err() error {
	return f.err
}

// Value returns the formatted target value and whether the field carries one.
// A field carries a value once binding or Assign stored into its target.
func (f *Field) Value() (string, bool) {
	if !f.assigned || f.show == nil {
		return "", false
	}
	return f.show(), true
}

// Assign coerces raw into the target without pattern or bounds checks.
// It is used to replay previously bound values.
func (f *Field) Assign(raw string) error {
	if f.err != nil {
		return f.err
	}
	if rej := f.coerce(raw); rej != nil {
		return rej
	}
	f.assigned = true
	return nil
}
