package form_test

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-framework/addon-mode-site/pkg/form"
)

func requireRejection(t *testing.T, err error, code, field string) {
	t.Helper()
	require.ErrorIs(t, err, form.ErrRejected)
	rej, ok := form.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, code, rej.Code)
	assert.Equal(t, field, rej.Field)
}

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("binds all kinds", func(t *testing.T) {
		t.Parallel()

		var (
			name  string
			qty   int
			price float64
			gift  bool
		)
		fields := []*form.Field{
			form.String("name", &name),
			form.Int("qty", &qty, form.Min(1), form.Max(10)),
			form.Float("price", &price),
			form.Bool("gift", &gift),
		}
		err := form.Bind(fields, url.Values{
			"name":  {"Ada"},
			"qty":   {"3"},
			"price": {"9.5"},
			"gift":  {"on"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", name)
		assert.Equal(t, 3, qty)
		assert.InDelta(t, 9.5, price, 0.0001)
		assert.True(t, gift)

		v, ok := fields[1].Value()
		require.True(t, ok)
		assert.Equal(t, "3", v)
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()

		var name string
		err := form.Bind([]*form.Field{form.String("name", &name)}, url.Values{})
		requireRejection(t, err, form.ParamRequired, "name")
	})

	t.Run("missing optional field is skipped", func(t *testing.T) {
		t.Parallel()

		var note string
		f := form.String("note", &note, form.Optional())
		require.NoError(t, form.Bind([]*form.Field{f}, url.Values{}))

		_, ok := f.Value()
		assert.False(t, ok)
	})

	t.Run("blank optional field is skipped", func(t *testing.T) {
		t.Parallel()

		var qty int64
		f := form.Int("qty", &qty, form.Optional())
		require.NoError(t, form.Bind([]*form.Field{f}, url.Values{"qty": {" "}}))

		_, ok := f.Value()
		assert.False(t, ok)
	})

	t.Run("empty required string fails default pattern", func(t *testing.T) {
		t.Parallel()

		var name string
		err := form.Bind([]*form.Field{form.String("name", &name)}, url.Values{"name": {""}})
		requireRejection(t, err, form.ParamPattern, "name")
	})

	t.Run("custom pattern", func(t *testing.T) {
		t.Parallel()

		var zip string
		fields := []*form.Field{form.String("zip", &zip, form.Pattern(`^\d{5}$`))}

		requireRejection(t, form.Bind(fields, url.Values{"zip": {"12a45"}}), form.ParamPattern, "zip")
		require.NoError(t, form.Bind(fields, url.Values{"zip": {"12345"}}))
		assert.Equal(t, "12345", zip)
	})

	t.Run("non numeric integer", func(t *testing.T) {
		t.Parallel()

		var qty int
		err := form.Bind([]*form.Field{form.Int("qty", &qty)}, url.Values{"qty": {"abc"}})
		requireRejection(t, err, form.ParamType, "qty")
	})

	t.Run("integral numeric text", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]int{"3.0": 3, "1e1": 10, " 7 ": 7, "-2.00": -2} {
			var qty int
			fields := []*form.Field{form.Int("qty", &qty)}
			require.NoError(t, form.Bind(fields, url.Values{"qty": {raw}}), raw)
			assert.Equal(t, want, qty, raw)

			v, ok := fields[0].Value()
			require.True(t, ok)
			assert.Equal(t, strconv.Itoa(want), v)
		}
	})

	t.Run("fractional integer", func(t *testing.T) {
		t.Parallel()

		var qty int
		for _, raw := range []string{"2.5", "1e-1", "NaN"} {
			err := form.Bind([]*form.Field{form.Int("qty", &qty)}, url.Values{"qty": {raw}})
			requireRejection(t, err, form.ParamType, "qty")
		}
		err := form.Bind([]*form.Field{form.Int("qty", &qty)}, url.Values{"qty": {"1e30"}})
		requireRejection(t, err, form.ParamSize, "qty")
	})

	t.Run("non numeric float", func(t *testing.T) {
		t.Parallel()

		var price float64
		for _, raw := range []string{"1,5", "NaN", "Inf"} {
			err := form.Bind([]*form.Field{form.Float("price", &price)}, url.Values{"price": {raw}})
			requireRejection(t, err, form.ParamType, "price")
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		t.Parallel()

		var qty int
		fields := []*form.Field{form.Int("qty", &qty, form.Min(1), form.Max(10))}

		require.NoError(t, form.Bind(fields, url.Values{"qty": {"1"}}))
		require.NoError(t, form.Bind(fields, url.Values{"qty": {"10"}}))
		requireRejection(t, form.Bind(fields, url.Values{"qty": {"0"}}), form.ParamSize, "qty")
		requireRejection(t, form.Bind(fields, url.Values{"qty": {"15"}}), form.ParamSize, "qty")
	})

	t.Run("overflow of target type", func(t *testing.T) {
		t.Parallel()

		var small int8
		err := form.Bind([]*form.Field{form.Int("n", &small)}, url.Values{"n": {"300"}})
		requireRejection(t, err, form.ParamSize, "n")
	})

	t.Run("boolean coerces any value", func(t *testing.T) {
		t.Parallel()

		cases := map[string]bool{"1": true, "on": true, "yes": true, "0": false, "false": false, "": false, "off": false}
		for raw, want := range cases {
			var b bool
			require.NoError(t, form.Bind([]*form.Field{form.Bool("b", &b)}, url.Values{"b": {raw}}))
			assert.Equal(t, want, b, "raw %q", raw)
		}
	})

	t.Run("stops at first failure and keeps earlier values", func(t *testing.T) {
		t.Parallel()

		var (
			name string
			qty  int
			zip  string
		)
		fields := []*form.Field{
			form.String("name", &name),
			form.Int("qty", &qty, form.Max(5)),
			form.String("zip", &zip),
		}
		err := form.Bind(fields, url.Values{"name": {"Ada"}, "qty": {"9"}})
		requireRejection(t, err, form.ParamSize, "qty")

		assert.Equal(t, "Ada", name)
		_, ok := fields[0].Value()
		assert.True(t, ok)
		_, ok = fields[1].Value()
		assert.False(t, ok)
		_, ok = fields[2].Value()
		assert.False(t, ok)
	})

	t.Run("sanitize strips markup", func(t *testing.T) {
		t.Parallel()

		var note string
		f := form.String("note", &note, form.Sanitize())
		require.NoError(t, form.Bind([]*form.Field{f}, url.Values{"note": {"<b>hi</b>"}}))
		assert.Equal(t, "hi", note)
	})
}

func TestBind_Configuration(t *testing.T) {
	t.Parallel()

	var (
		s string
		n int
	)
	tests := []struct {
		name  string
		field *form.Field
	}{
		{"unknown kind", form.Declare("x", "decimal", &s)},
		{"kind mismatch", form.Declare("x", "integer", &s)},
		{"unsupported target", form.Declare("x", "string", &[]string{})},
		{"bad pattern", form.String("x", &s, form.Pattern("("))},
		{"pattern on integer", form.Int("x", &n, form.Pattern("^1$"))},
		{"bounds on string", form.String("x", &s, form.Min(1))},
		{"min above max", form.Int("x", &n, form.Min(5), form.Max(1))},
		{"nil target", form.String("x", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Error(t, tt.field.Err())
			err := form.Bind([]*form.Field{tt.field}, url.Values{"x": {"1"}})
			require.ErrorIs(t, err, form.ErrConfiguration)
			assert.NotErrorIs(t, err, form.ErrRejected)
		})
	}

	t.Run("configuration error wins over earlier rejection", func(t *testing.T) {
		t.Parallel()

		var a string
		fields := []*form.Field{form.String("a", &a), form.Declare("b", "money", &a)}
		err := form.Bind(fields, url.Values{})
		require.ErrorIs(t, err, form.ErrConfiguration)
	})

	t.Run("duplicate names", func(t *testing.T) {
		t.Parallel()

		var a, b string
		err := form.Bind([]*form.Field{form.String("a", &a), form.String("a", &b)}, url.Values{"a": {"x"}})
		require.ErrorIs(t, err, form.ErrConfiguration)
	})
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := map[string]form.Kind{
		"string":  form.KindString,
		"integer": form.KindInteger,
		"int":     form.KindInteger,
		"float":   form.KindFloat,
		"double":  form.KindFloat,
		"boolean": form.KindBoolean,
		"bool":    form.KindBoolean,
		" Int ":   form.KindInteger,
	}
	for tag, want := range tests {
		got, err := form.ParseKind(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got)
	}

	_, err := form.ParseKind("date")
	require.ErrorIs(t, err, form.ErrConfiguration)
}

func TestField_Assign(t *testing.T) {
	t.Parallel()

	var qty int64
	f := form.Int("qty", &qty, form.Max(5))
	require.NoError(t, f.Assign("15"))
	assert.Equal(t, int64(15), qty)

	v, ok := f.Value()
	require.True(t, ok)
	assert.Equal(t, "15", v)

	require.ErrorIs(t, f.Assign("x"), form.ErrRejected)
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, form.Accept().Accepted())
	assert.Equal(t, "thanks", form.Accept().WithReason("thanks").Reason)

	o := form.Reject("OUT_OF_STOCK", "qty")
	assert.False(t, o.Accepted())
	assert.Equal(t, "OUT_OF_STOCK", o.Reason)
	assert.Equal(t, "qty", o.Reference)

	assert.False(t, form.Outcome{}.Accepted())
}
