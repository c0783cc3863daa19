// Package service contains the response logic.
//
// It sits behind the handler layer and receives already bound and
// validated values. Every operation is a pure formatter: the same
// input always yields the same response text.
package service
