// Package handler is the first layer after the router.
//
// It binds requests, runs input validation through the validation
// package and calls the service layer for the response text. It is the
// interface between the HTTP request and the response logic.
package handler
