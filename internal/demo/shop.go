package demo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/map-framework/addon-mode-site/pkg/form"
	"github.com/map-framework/addon-mode-site/pkg/page"
)

// Rejection reasons reported by the checkout.
const (
	ReasonOutOfStock = "OUT_OF_STOCK"
	ReasonOrdered    = "ORDERED"
)

// Shop is an in-memory stock of one article.
type Shop struct {
	mu     sync.Mutex
	stock  int
	orders atomic.Int64
	closed atomic.Bool
}

// NewShop returns a shop holding stock items.
func NewShop(stock int) *Shop {
	return &Shop{stock: stock}
}

// Stock returns the items left.
func (s *Shop) Stock() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock
}

// Close refuses every visitor until Open is called.
func (s *Shop) Close() { s.closed.Store(true) }

// Open lets visitors in again.
func (s *Shop) Open() { s.closed.Store(false) }

// reserve takes qty items off the stock. It reports false when not enough
// items are left.
func (s *Shop) reserve(qty int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty > s.stock {
		return "", false
	}
	s.stock -= qty
	return fmt.Sprintf("ORD-%05d", s.orders.Add(1)), true
}

// Checkout builds the checkout page for one request.
func (s *Shop) Checkout(req *page.Request) page.Page {
	return &Checkout{Base: page.NewBase(req), shop: s}
}

// Checkout orders a quantity of the article.
type Checkout struct {
	*page.Base

	Qty   int
	Email string
	Note  string
	Gift  bool

	shop *Shop
}

func (p *Checkout) Authorize(context.Context) bool {
	return !p.shop.closed.Load()
}

// View pre-fills the quantity and shows the remaining stock.
func (p *Checkout) View(context.Context) error {
	if _, ok := p.FormData("qty"); !ok {
		p.SetFormData("qty", "1")
	}
	p.SetFormData("stock", fmt.Sprint(p.shop.Stock()))
	return nil
}

func (p *Checkout) Check(context.Context) (form.Outcome, error) {
	order, ok := p.shop.reserve(p.Qty)
	if !ok {
		p.SetFormData("stock", fmt.Sprint(p.shop.Stock()))
		return form.Reject(ReasonOutOfStock, "qty"), nil
	}
	p.SetFormData("order", order)
	p.SetFormData("qty", fmt.Sprint(p.Qty))
	return form.Accept().WithReason(ReasonOrdered), nil
}

func (p *Checkout) Fields() []*form.Field {
	return []*form.Field{
		form.Int("qty", &p.Qty, form.Min(1), form.Max(10)),
		form.String("email", &p.Email, form.Pattern(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)),
		form.String("note", &p.Note, form.Optional(), form.Sanitize()),
		form.Bool("gift", &p.Gift, form.Optional()),
	}
}
