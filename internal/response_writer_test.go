package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)

	if rw.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_ReusesWrapped(t *testing.T) {
	w := httptest.NewRecorder()
	outer := NewResponseWriter(w)

	var hookCalled bool
	outer.OnBeforeWrite(func() { hookCalled = true })

	inner := NewResponseWriter(outer)
	if inner != outer {
		t.Fatal("NewResponseWriter wrapped an already wrapped writer")
	}

	inner.WriteHeader(http.StatusTeapot)

	if !hookCalled {
		t.Error("outer hook was not called")
	}
	if !outer.Written() {
		t.Error("Written() = false on outer writer, want true")
	}
}

func TestResponseWriter_HookSetsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.OnBeforeWrite(func() {
		rw.Header().Set("Set-Cookie", "__sid=abc")
	})

	rw.Write([]byte("body"))

	if got := w.Header().Get("Set-Cookie"); got != "__sid=abc" {
		t.Errorf("Set-Cookie = %q, want %q", got, "__sid=abc")
	}
	if w.Code != http.StatusOK {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestResponseWriter_WriteHeader_OnlyOnce(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusOK)
	rw.WriteHeader(http.StatusNotFound)

	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
	if w.Code != http.StatusOK {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestResponseWriter_Write(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	data := []byte("hello world")
	n, err := rw.Write(data)

	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if n != len(data) {
		t.Errorf("Write() = %d, want %d", n, len(data))
	}
	if rw.Size() != int64(len(data)) {
		t.Errorf("Size() = %d, want %d", rw.Size(), len(data))
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
	if w.Body.String() != "hello world" {
		t.Errorf("body = %q, want %q", w.Body.String(), "hello world")
	}
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	var hookCalled bool
	rw.OnBeforeWrite(func() {
		hookCalled = true
	})

	rw.WriteHeader(http.StatusOK)

	if !hookCalled {
		t.Error("hook was not called")
	}
}

func TestResponseWriter_OnBeforeWrite_MultipleHooks(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	var order []int
	rw.OnBeforeWrite(func() { order = append(order, 1) })
	rw.OnBeforeWrite(func() { order = append(order, 2) })
	rw.OnBeforeWrite(func() { order = append(order, 3) })

	rw.WriteHeader(http.StatusOK)

	if len(order) != 3 {
		t.Fatalf("expected 3 hooks called, got %d", len(order))
	}
	for i, v := range order {
		if v != i+1 {
			t.Errorf("hook order[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestResponseWriter_OnBeforeWrite_CalledOnce(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	callCount := 0
	rw.OnBeforeWrite(func() { callCount++ })

	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte("data"))

	if callCount != 1 {
		t.Errorf("hook called %d times, want 1", callCount)
	}
}

func TestResponseWriter_OnBeforeWrite_CalledOnFirstWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	var hookCalled bool
	rw.OnBeforeWrite(func() { hookCalled = true })

	rw.Write([]byte("data"))

	if !hookCalled {
		t.Error("hook was not called on Write")
	}
}

func TestResponseWriter_Flush(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.Flush()

	if !w.Flushed {
		t.Error("underlying flusher not called")
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if rw.Unwrap() != w {
		t.Error("Unwrap() did not return underlying writer")
	}
}

func TestResponseWriter_Header(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.Header().Set("X-Test", "value")

	if got := w.Header().Get("X-Test"); got != "value" {
		t.Errorf("Header X-Test = %q, want %q", got, "value")
	}
}
