package form_test

import (
	"net/url"
	"regexp"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/map-framework/addon-mode-site/pkg/form"
)

var lowerHexID = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestNewID(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := form.NewID()
		assert.Regexp(t, lowerHexID, id)
		assert.True(t, form.IsID(id))
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestIsID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"0123456789abcdef", true},
		{"0123456789ABCDEF", false},
		{"0123456789abcdeF", false},
		{"0123456789abcde", false},
		{"0123456789abcdef0", false},
		{"0123456789abcdeg", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, form.IsID(tt.in), tt.in)
	}
}

func TestIDProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any 16 lowercase hex characters are a form id", prop.ForAll(
		func(s string) bool {
			return form.IsID(s)
		},
		gen.RegexMatch(`^[0-9a-f]{16}$`),
	))

	properties.Property("upper case letters are never a form id", prop.ForAll(
		func(s string) bool {
			return !form.IsID(s)
		},
		gen.RegexMatch(`^[0-9a-f]{8}[A-F][0-9a-fA-F]{7}$`),
	))

	properties.Property("other lengths are never a form id", prop.ForAll(
		func(s string) bool {
			return len(s) == form.IDLength || !form.IsID(s)
		},
		gen.AnyString(),
	))

	properties.Property("generated ids bind through the id field", prop.ForAll(
		func(_ int) bool {
			var id string
			err := form.Bind([]*form.Field{form.IDFieldFor(&id)}, url.Values{form.IDField: {form.NewID()}})
			return err == nil && lowerHexID.MatchString(id)
		},
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestBoundsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("integer bounds are inclusive", prop.ForAll(
		func(n int) bool {
			var qty int
			err := form.Bind([]*form.Field{form.Int("qty", &qty, form.Min(1), form.Max(10))},
				url.Values{"qty": {strconv.Itoa(n)}})
			if n >= 1 && n <= 10 {
				return err == nil && qty == n
			}
			rej, ok := form.AsRejection(err)
			return ok && rej.Code == form.ParamSize && rej.Field == "qty"
		},
		gen.IntRange(-50, 50),
	))

	properties.TestingRun(t)
}
