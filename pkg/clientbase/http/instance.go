package cbhttp

import (
	"net/http"

	lhttp "github.com/atlasml/alignsync/pkg/http"
)

type Instance struct {
	Client    *http.Client
	doNoRetry RunnerFunc
}

type RunnerFunc func(r *Request) (*Response, *lhttp.HttpError)

func NewInstance(cfg *Config) (*Instance, error) {
	var checkRedirect func(req *http.Request, via []*http.Request) error

	if cfg.AvoidRedirects {
		checkRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	client := &http.Client{
		Timeout:       cfg.Timeout,
		CheckRedirect: checkRedirect,
	}

	return &Instance{
		Client: client,
		doNoRetry: func(r *Request) (*Response, *lhttp.HttpError) {
			return httpDoNoRetry(client, r)
		},
	}, nil
}

func (c *Instance) Close() error {
	if c.Client != nil {
		c.Client.CloseIdleConnections()
	}
	return nil
}
