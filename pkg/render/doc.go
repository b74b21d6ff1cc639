// Package render turns assembled site responses into HTML.
//
// HTMLRenderer executes html/template page templates with a *View as data.
// Parsed templates are cached and dropped by Reset, which Watch calls when a
// template file changes during development. Templates read the response
// through the view:
//
//	<form method="post">
//	  <input type="hidden" name="formId" value="{{.FormID}}">
//	  <input name="qty" value="{{.Value "qty"}}">
//	  {{if .Rejected}}<p class="error">{{.Reason}} {{.Reference}}</p>{{end}}
//	</form>
//
// Component adapts a renderer call to templ.Component for the HTTP layer.
package render
