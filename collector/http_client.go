package collector

import (
	"net/http"
	"time"
)

// Getter is the minimal HTTP surface the feed client and preview resolver
// depend on. Tests substitute it with httptest-backed fakes.
type Getter interface {
	Get(uri string) (resp *http.Response, err error)
}

// HttpClient is the default Getter backed by net/http with a request
// timeout.
type HttpClient struct {
	Timeout time.Duration
}

func (c HttpClient) Get(uri string) (resp *http.Response, err error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	return client.Get(uri)
}
