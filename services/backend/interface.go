package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Requester is what the domain services need from the upstream backend.
type Requester interface {
	Do(ctx context.Context, req Request) (*Response, error)
	JSON(ctx context.Context, req Request, out any) error
}

// Request is one call to the external backend. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Token  string
	Body   any
	// RawBody is forwarded verbatim when set and takes precedence over Body.
	RawBody []byte
}

// Response is a fully read upstream reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
