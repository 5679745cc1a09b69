// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting for the study desk. Handlers translate HTTP
// concerns into calls on the desk's components and render their views as
// JSON, HTML partials or the full page.
package api
