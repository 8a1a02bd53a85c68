package cbhttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	retry "github.com/avast/retry-go"
	lhttp "github.com/atlasml/alignsync/pkg/http"
)

type Request struct {
	Method        string
	URI           string
	Header        http.Header
	Query         url.Values
	Body          io.ReadCloser
	ContentLength int64
	HErr          *lhttp.HttpError
	Context       context.Context
	retryOptions  []retry.Option
}

type RequestOption func(*Request) *Request

func NewRequest(ctx context.Context, method, uri string, options ...RequestOption) *Request {
	r := &Request{
		Method:  method,
		URI:     uri,
		Header:  make(http.Header),
		Query:   make(url.Values),
		Context: ctx,
	}

	return r.Options(options...)
}

func (r *Request) Options(options ...RequestOption) *Request {
	return ComposeOptions(options...)(r)
}

func ComposeOptions(options ...RequestOption) RequestOption {
	return func(r *Request) *Request {
		for _, opt := range options {
			r = opt(r)
		}
		return r
	}
}

func Header(key, value string) RequestOption {
	return func(r *Request) *Request {
		r.Header.Set(key, value)
		return r
	}
}

func BearerAuth(token string) RequestOption {
	return Header("authorization", "Bearer "+token)
}

func QueryValue(key, value string) RequestOption {
	return func(r *Request) *Request {
		r.Query.Set(key, value)
		return r
	}
}

func JsonBody(content []byte) RequestOption {
	return func(r *Request) *Request {
		r.Body = io.NopCloser(bytes.NewReader(content))
		r.ContentLength = int64(len(content))
		r.Header.Set("Content-Type", "application/json")
		return r
	}
}
