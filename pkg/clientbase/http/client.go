package cbhttp

import (
	"bytes"
	"io"
	"net/http"

	"github.com/avast/retry-go"
	lhttp "github.com/atlasml/alignsync/pkg/http"
)

// Do sends an HTTP request and returns an HTTP response.
//
// An error is returned for network/policy issues as well as for non-2xx
// responses. This differs from the standard library's http.Client.Do, which
// does not return an error for the latter.
func (c *Instance) Do(r *Request) (*Response, *lhttp.HttpError) {
	if r.HErr != nil {
		return nil, r.HErr
	}

	if len(r.retryOptions) > 0 {
		opts := append(r.retryOptions, retry.Context(r.Context))

		var response *Response
		var herr *lhttp.HttpError

		var bodyContent []byte
		var err error
		if r.Body != nil {
			// Keep a copy of the body in case of retries
			bodyContent, err = io.ReadAll(r.Body)
			if err != nil {
				return nil, lhttp.FromError(err)
			}
			r.Body.Close()
		}

		_ = retry.Do(func() error {
			if bodyContent != nil {
				r.Body = io.NopCloser(bytes.NewBuffer(bodyContent))
			}
			response, herr = c.doNoRetry(r)
			if herr != nil {
				return herr
			}
			return nil
		}, opts...)

		return response, herr
	}

	return c.doNoRetry(r)
}

func (c *Instance) DoNoResponse(r *Request) *lhttp.HttpError {
	body, err := c.Do(r)
	if body != nil {
		body.Close()
	}
	return err
}

type Response struct {
	http.Response
}

func (r *Response) Read(p []byte) (int, error) { return r.Body.Read(p) }
func (r *Response) Close() error               { return r.Body.Close() }

var _ io.ReadCloser = &Response{}
