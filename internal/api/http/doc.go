// Package http provides the REST handlers for desktop sessions.
//
// Every mutating route resolves the :id desktop, validates the :win window
// id against the catalog (400 when malformed, 404 when undeclared) and then
// calls straight into the desktop core. Core operations never fail; the
// "success" field reports whether anything changed.
//
// Routes are registered by the server package.
package http
