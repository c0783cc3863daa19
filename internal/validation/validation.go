// Package validation contains the logic for binding and validating
// request data.
//
// Binding is delegated to echo (path, query, form, multipart and JSON
// sources); the `validator` library then enforces the rules declared
// in struct tags. Both kinds of failure are converted into the
// client-facing errs.HTTPError shape.
package validation
