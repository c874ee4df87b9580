// Package httpkit re-exports the platform http helpers for modules, so
// service code never imports internal/platform/net/http directly
package httpkit

import (
	"encoding/json"
	"net/http"

	phttp "prospector/internal/platform/net/http"
)

type (
	// Envelope is the shared response envelope
	Envelope = phttp.Envelope

	// Page is the pagination block
	Page = phttp.Page

	// Response is the return-style handler value
	Response = phttp.Response

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK wraps data in a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a bodyless 204 response
func NoContent() Response { return phttp.NoContent() }

// Data aliases OK
func Data(v any) Response { return phttp.Data(v) }

// Error maps an error onto status and envelope at write time
func Error(err error) Response { return phttp.Error(err) }

// List wraps items plus pagination in a 200 response
func List(items any, total, page, size int, cursor string) Response {
	return phttp.List(items, total, page, size, cursor)
}

// JSON decodes the body into T, runs fn, and envelopes the result.
// Handlers may return a Response directly to control the status
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		var in T
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return phttp.Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Call adapts a bodyless handler into the envelope shape
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle adapts a Response-returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
