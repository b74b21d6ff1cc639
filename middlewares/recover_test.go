package middlewares_test

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/map-framework/addon-mode-site/internal"
	"github.com/map-framework/addon-mode-site/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes PanicError", func(t *testing.T) {
		t.Parallel()

		var got error
		app := internal.New(
			internal.WithMiddleware(middlewares.Recover()),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.String(http.StatusInternalServerError, "recovered")
			}),
			internal.WithHandlers(routeHandler{path: "/", fn: func(internal.Context) error {
				panic("test panic")
			}}),
		)

		rec := get(app, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "recovered", rec.Body.String())

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.Equal(t, http.StatusInternalServerError, pe.StatusCode())
	})

	t.Run("default handler answers 500 and logs the panic", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := newApp(&buf, func(internal.Context) error {
			panic("boom")
		}, middlewares.Recover(middlewares.WithRecoverDisablePrintStack()))

		rec := get(app, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, buf.String(), "panic recovered")
		require.Contains(t, buf.String(), `"path":"/"`)
		require.NotContains(t, buf.String(), `"stack"`)
	})

	t.Run("error panic is unwrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("page view failed")
		handler := middlewares.Recover()(func(internal.Context) error {
			panic(cause)
		})

		var got error
		app := internal.New(
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routeHandler{path: "/", fn: handler}),
		)
		get(app, nil)

		require.ErrorIs(t, got, cause)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := newApp(&buf, func(c internal.Context) error {
			return c.String(http.StatusOK, "fine")
		}, middlewares.Recover())

		rec := get(app, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "fine", rec.Body.String())
	})

	t.Run("stack size option", func(t *testing.T) {
		t.Parallel()

		var got error
		app := internal.New(
			internal.WithMiddleware(middlewares.Recover(middlewares.WithRecoverStackSize(64))),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusInternalServerError)
			}),
			internal.WithHandlers(routeHandler{path: "/", fn: func(internal.Context) error {
				panic("small")
			}}),
		)
		get(app, nil)

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})
}
