// Package form binds submitted body fields to typed page targets.
//
// Pages declare their fields as an explicit list:
//
//	func (p *Checkout) Fields() []*form.Field {
//		return []*form.Field{
//			form.Int("qty", &p.Qty, form.Min(1), form.Max(10)),
//			form.String("note", &p.Note, form.Optional(), form.Sanitize()),
//		}
//	}
//
// Bind walks the list in order and stops at the first failure, reporting one
// of PARAM_REQUIRED, PARAM_TYPE, PARAM_PATTERN or PARAM_SIZE. Invalid
// declarations wrap ErrConfiguration and are never shown to visitors.
//
// The package also defines form ids, statuses and business check outcomes.
package form
