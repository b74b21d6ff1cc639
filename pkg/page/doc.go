// Package page defines site pages and resolves them by area and name.
//
// A page type embeds *Base and implements Authorize, View, Check and Fields:
//
//	type Checkout struct {
//		*page.Base
//		Qty int
//	}
//
//	reg := page.NewRegistry(templates)
//	reg.Register("shop", "checkout", func(req *page.Request) page.Page {
//		return &Checkout{Base: page.NewBase(req)}
//	})
//
// Templates live at area/{area}/view/site/{page}.gohtml unless WithPattern
// says otherwise.
package page
