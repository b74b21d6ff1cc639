package formstate

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/map-framework/addon-mode-site/pkg/form"
)

// SessionKey is the session value holding all pending form records.
const SessionKey = "form"

// Values is the session surface the store reads from and flushes into.
// *session.Session satisfies it.
type Values interface {
	GetValue(key string) (any, bool)
	SetValue(key string, val any)
}

// Record is the pending state of one page's form.
type Record struct {
	Data  map[string]string `json:"data"`
	Close bool              `json:"close"`
}

// FormID returns the form id stored in the record.
func (r Record) FormID() string {
	return r.Data[form.IDField]
}

func (r Record) clone() Record {
	return Record{Data: maps.Clone(r.Data), Close: r.Close}
}

// Bucket maps area to page to record. It is the value stored under SessionKey.
type Bucket map[string]map[string]Record

func (b Bucket) clone() Bucket {
	out := make(Bucket, len(b))
	for area, pages := range b {
		cp := make(map[string]Record, len(pages))
		for name, rec := range pages {
			cp[name] = rec.clone()
		}
		out[area] = cp
	}
	return out
}

// Store is the per-request view of the pending form records of one session.
// It is not safe for concurrent use.
type Store struct {
	forms   Bucket
	flushed bool
}

// New returns an empty store.
func New() *Store {
	return &Store{forms: make(Bucket)}
}

// Load reads the pending records from the session.
//
// The returned store is always usable: when the stored value cannot be
// decoded, Load returns an empty store together with the decode error.
func Load(src Values) (*Store, error) {
	s := New()
	if src == nil {
		return s, nil
	}

	raw, ok := src.GetValue(SessionKey)
	if !ok || raw == nil {
		return s, nil
	}

	switch v := raw.(type) {
	case Bucket:
		s.forms = v.clone()
		return s, nil
	default:
		// Stores that serialize sessions hand back generic maps.
		b, err := json.Marshal(v)
		if err != nil {
			return s, fmt.Errorf("formstate: encode session value: %w", err)
		}
		var bucket Bucket
		if err := json.Unmarshal(b, &bucket); err != nil {
			return s, fmt.Errorf("formstate: decode session value: %w", err)
		}
		if bucket != nil {
			s.forms = bucket
		}
		return s, nil
	}
}

// Flush writes the records back into the session.
// Only the first call has an effect.
func (s *Store) Flush(dst Values) {
	if s.flushed || dst == nil {
		return
	}
	s.flushed = true
	dst.SetValue(SessionKey, s.forms.clone())
}

// Get returns the record for area and page.
func (s *Store) Get(area, page string) (Record, bool) {
	rec, ok := s.forms[area][page]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// GetFor returns the record for area and page only when it belongs to formID.
func (s *Store) GetFor(area, page, formID string) (Record, bool) {
	if !form.IsID(formID) {
		return Record{}, false
	}
	rec, ok := s.Get(area, page)
	if !ok || rec.FormID() != formID {
		return Record{}, false
	}
	return rec, true
}

// Set stores data as the record for area and page, replacing any previous one.
func (s *Store) Set(area, page string, data map[string]string, closed bool) {
	pages, ok := s.forms[area]
	if !ok {
		pages = make(map[string]Record)
		s.forms[area] = pages
	}
	if data == nil {
		data = map[string]string{}
	}
	pages[page] = Record{Data: maps.Clone(data), Close: closed}
}

// Close marks the form as finished, keeping only its id so that later
// submissions of the same form are recognised as repeated.
func (s *Store) Close(area, page, formID string) error {
	if !form.IsID(formID) {
		return fmt.Errorf("%w: %q", form.ErrInvalidID, formID)
	}
	s.Set(area, page, map[string]string{form.IDField: formID}, true)
	return nil
}

// IsClosed reports whether a closed record exists for area and page.
func (s *Store) IsClosed(area, page string) bool {
	rec, ok := s.forms[area][page]
	return ok && rec.Close
}

// IsClosedFor reports whether the record for area and page is closed for formID.
func (s *Store) IsClosedFor(area, page, formID string) bool {
	rec, ok := s.GetFor(area, page, formID)
	return ok && rec.Close
}

// IsOpen reports whether an open record exists for area and page.
func (s *Store) IsOpen(area, page string) bool {
	rec, ok := s.forms[area][page]
	return ok && !rec.Close
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	n := 0
	for _, pages := range s.forms {
		n += len(pages)
	}
	return n
}
