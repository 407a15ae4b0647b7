package middleware

import (
	"io"
	"net/http"
	"testing"
)

// capture is a terminal handler that remembers the last request it saw.
type capture struct {
	t     *testing.T
	calls int
	req   *http.Request
	body  string
}

func (c *capture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.calls++
	c.req = r
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			c.t.Fatalf("read body: %v", err)
		}
		c.body = string(b)
	}
	w.WriteHeader(http.StatusOK)
}
