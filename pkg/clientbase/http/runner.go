package cbhttp

import (
	"io"
	"net/http"

	lhttp "github.com/atlasml/alignsync/pkg/http"
)

func httpDoNoRetry(client *http.Client, r *Request) (*Response, *lhttp.HttpError) {
	request, err := http.NewRequest(r.Method, r.URI, r.Body)
	if err != nil {
		return nil, &lhttp.HttpError{Err: err}
	}

	if r.Header != nil {
		request.Header = r.Header
	}

	if r.Query != nil && len(r.Query) > 0 {
		request.URL.RawQuery = r.Query.Encode()
	}

	request.ContentLength = r.ContentLength

	if r.Context != nil {
		request = request.WithContext(r.Context)
	}

	resp, err := client.Do(request)
	if err != nil {
		return nil, &lhttp.HttpError{Err: err}
	}

	if resp.StatusCode < 200 || 300 <= resp.StatusCode {
		responseBody, rerr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if rerr != nil {
			return nil, &lhttp.HttpError{Err: rerr}
		}
		return nil, &lhttp.HttpError{Code: resp.StatusCode, Message: string(responseBody)}
	}

	response := &Response{*resp}
	return response, nil
}
