package page

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/map-framework/addon-mode-site/pkg/logger"
)

// DefaultPattern locates a page template inside the template filesystem.
const DefaultPattern = "area/{area}/view/site/{page}.gohtml"

// Factory builds a page for one request.
type Factory func(req *Request) Page

// Template identifies a page's template resource.
type Template struct {
	FS   fs.FS
	Path string
}

// Descriptor is a resolved page: its factory and its template.
type Descriptor struct {
	Area     string
	Name     string
	Template Template

	factory Factory
}

// New builds the page for req.
// Returns ErrInvalidPage when the factory yields no page or a page without
// a base.
func (d *Descriptor) New(req *Request) (Page, error) {
	p := d.factory(req)
	if isNil(p) {
		return nil, fmt.Errorf("%w: %s/%s: factory returned nil", ErrInvalidPage, d.Area, d.Name)
	}

	base := p.PageBase()
	if base == nil {
		return nil, fmt.Errorf("%w: %s/%s: base not initialised", ErrInvalidPage, d.Area, d.Name)
	}
	if !base.Initialized() {
		base.init(req)
	}
	return p, nil
}

func isNil(p Page) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Registry maps area and page names to page factories and templates.
type Registry struct {
	mu      sync.RWMutex
	pages   map[string]Factory
	fsys    fs.FS
	pattern string
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPattern sets the template path pattern. The placeholders {area} and
// {page} are replaced by the request tokens.
func WithPattern(pattern string) RegistryOption {
	return func(r *Registry) {
		if pattern != "" {
			r.pattern = pattern
		}
	}
}

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns a registry resolving templates in fsys.
func NewRegistry(fsys fs.FS, opts ...RegistryOption) *Registry {
	r := &Registry{
		pages:   make(map[string]Factory),
		fsys:    fsys,
		pattern: DefaultPattern,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a factory to area and name, replacing a previous one.
func (r *Registry) Register(area, name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[key(area, name)] = f
}

// Pages returns the registered "area/page" identities, sorted.
func (r *Registry) Pages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.pages))
	for k := range r.pages {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// TemplatePath returns the template location for area and name.
func (r *Registry) TemplatePath(area, name string) string {
	return strings.NewReplacer("{area}", area, "{page}", name).Replace(r.pattern)
}

// Resolve finds the page registered for area and name and checks its
// template. Missing pages and templates wrap ErrNotFound. Registrations
// that can never serve a page wrap ErrInvalidPage or ErrTemplateUnreadable.
func (r *Registry) Resolve(ctx context.Context, area, name string) (*Descriptor, error) {
	if !validToken(area) || !validToken(name) {
		r.logger.DebugContext(ctx, "page identity rejected", slog.String("area", area), slog.String("page", name))
		return nil, fmt.Errorf("%w: %q/%q", ErrPageNotFound, area, name)
	}

	r.mu.RLock()
	factory, ok := r.pages[key(area, name)]
	r.mu.RUnlock()
	if !ok {
		r.logger.DebugContext(ctx, "page not registered", slog.String("area", area), slog.String("page", name))
		return nil, fmt.Errorf("%w: %s/%s", ErrPageNotFound, area, name)
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: %s/%s: nil factory", ErrInvalidPage, area, name)
	}

	path := r.TemplatePath(area, name)
	if err := r.checkTemplate(path); err != nil {
		if errors.Is(err, ErrNotFound) {
			r.logger.DebugContext(ctx, "page template missing",
				slog.String("area", area),
				slog.String("page", name),
				slog.String("template", path),
			)
		}
		return nil, err
	}

	return &Descriptor{
		Area:     area,
		Name:     name,
		Template: Template{FS: r.fsys, Path: path},
		factory:  factory,
	}, nil
}

func (r *Registry) checkTemplate(path string) error {
	if r.fsys == nil {
		return fmt.Errorf("%w: %s: no template filesystem", ErrTemplateUnreadable, path)
	}

	info, err := fs.Stat(r.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrTemplateUnreadable, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s: not a regular file", ErrTemplateUnreadable, path)
	}

	f, err := r.fsys.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplateUnreadable, path, err)
	}
	return f.Close()
}

func key(area, name string) string {
	return area + "/" + name
}

func validToken(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && fs.ValidPath(s)
}
