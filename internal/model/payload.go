// Package model holds the data shapes shared between the handler and
// service layers.
package model

// Payload is the JSON body shape accepted by the post6, PUT and PATCH
// routes. Both fields are required.
type Payload struct {
	BodyParam1 string `json:"bodyParam1"`
	BodyParam2 string `json:"bodyParam2"`
}
