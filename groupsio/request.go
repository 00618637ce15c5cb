package groupsio

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Param is one query parameter with its ordered values.
type Param struct {
	Key    string
	Values []string
}

// Body is an encoded request body.
type Body struct {
	ContentType string
	Data        []byte
}

// Request describes one API call independently of the HTTP transport.
// A built Request is never mutated; use Derive to change a field.
type Request struct {
	method  string
	path    string
	params  []Param
	headers map[string]string
	body    *Body
}

// Method returns the HTTP method.
func (r Request) Method() string { return r.method }

// Path returns the path relative to the API root.
func (r Request) Path() string { return r.path }

// Params returns a copy of the query parameters in declared order.
func (r Request) Params() []Param { return cloneParams(r.params) }

// Param returns the values of a query parameter.
func (r Request) Param(key string) ([]string, bool) {
	for _, p := range r.params {
		if p.Key == key {
			return slices.Clone(p.Values), true
		}
	}
	return nil, false
}

// Headers returns a copy of the headers.
func (r Request) Headers() map[string]string { return maps.Clone(r.headers) }

// Header returns a header value and whether it was set.
func (r Request) Header(key string) (string, bool) {
	v, ok := r.headers[key]
	return v, ok
}

// Body returns a copy of the body, or nil.
func (r Request) Body() *Body { return cloneBody(r.body) }

// RawQuery encodes the parameters as key=value pairs in declared order,
// repeating the key once per value.
func (r Request) RawQuery() string {
	var sb strings.Builder
	for _, p := range r.params {
		for _, v := range p.Values {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(p.Key))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}

// Derive returns a builder holding a copy of every field of r.
func (r Request) Derive() *RequestBuilder {
	return &RequestBuilder{
		method:  r.method,
		path:    r.path,
		params:  cloneParams(r.params),
		headers: maps.Clone(r.headers),
		body:    cloneBody(r.body),
	}
}

// RequestBuilder assembles a Request.
type RequestBuilder struct {
	method  string
	path    string
	params  []Param
	headers map[string]string
	body    *Body
	err     error
}

// NewRequest starts a request for the given method and path.
func NewRequest(method, path string) *RequestBuilder {
	return &RequestBuilder{method: method, path: path}
}

// Param sets a single-valued query parameter, replacing earlier values of key.
func (b *RequestBuilder) Param(key, value string) *RequestBuilder {
	return b.Params(key, value)
}

// Params sets a multi-valued query parameter, replacing earlier values of key.
// A key keeps its original position when overwritten.
func (b *RequestBuilder) Params(key string, values ...string) *RequestBuilder {
	if len(values) == 0 {
		b.fail(fmt.Errorf("parameter %q has no values", key))
		return b
	}
	p := Param{Key: key, Values: slices.Clone(values)}
	for i := range b.params {
		if b.params[i].Key == key {
			b.params[i] = p
			return b
		}
	}
	b.params = append(b.params, p)
	return b
}

// Header adds or overwrites a header.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[key] = value
	return b
}

// Body sets the request body.
func (b *RequestBuilder) Body(contentType string, data []byte) *RequestBuilder {
	b.body = &Body{ContentType: contentType, Data: slices.Clone(data)}
	return b
}

// FormBody sets a url-encoded form body.
func (b *RequestBuilder) FormBody(form url.Values) *RequestBuilder {
	return b.Body("application/x-www-form-urlencoded", []byte(form.Encode()))
}

func (b *RequestBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build snapshots the builder into a Request.
func (b *RequestBuilder) Build() (Request, error) {
	if b.err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, b.err)
	}
	if strings.TrimSpace(b.method) == "" {
		return Request{}, fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(b.path) == "" {
		return Request{}, fmt.Errorf("%w: path is required", ErrInvalidRequest)
	}
	return Request{
		method:  strings.ToUpper(b.method),
		path:    b.path,
		params:  cloneParams(b.params),
		headers: maps.Clone(b.headers),
		body:    cloneBody(b.body),
	}, nil
}

func cloneParams(params []Param) []Param {
	if params == nil {
		return nil
	}
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Key: p.Key, Values: slices.Clone(p.Values)}
	}
	return out
}

func cloneBody(b *Body) *Body {
	if b == nil {
		return nil
	}
	return &Body{ContentType: b.ContentType, Data: slices.Clone(b.Data)}
}
