package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is what [Backend] saw for one call.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type route struct {
	status  int
	body    any
	handler http.HandlerFunc
}

type failure struct {
	status int
	detail string
}

// Backend is a fake salon REST backend with per-route hit counters and failure toggles.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]route
	failures map[string]failure
	requests map[string][]RecordedRequest
}

// NewBackend starts a fake backend that is closed with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		routes:   make(map[string]route),
		failures: make(map[string]failure),
		requests: make(map[string][]RecordedRequest),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func routeKey(method, path string) string { return method + " " + path }

// Handle responds to method+path with status and body encoded as JSON.
func (b *Backend) Handle(method, path string, status int, body any) {
	b.mu.Lock()
	b.routes[routeKey(method, path)] = route{status: status, body: body}
	b.mu.Unlock()
}

// HandleFunc responds to method+path with fn. The request body is still recorded.
func (b *Backend) HandleFunc(method, path string, fn http.HandlerFunc) {
	b.mu.Lock()
	b.routes[routeKey(method, path)] = route{handler: fn}
	b.mu.Unlock()
}

// Fail makes method+path answer with status until [Backend.Recover]. An empty detail sends no body.
func (b *Backend) Fail(method, path string, status int, detail string) {
	b.mu.Lock()
	b.failures[routeKey(method, path)] = failure{status: status, detail: detail}
	b.mu.Unlock()
}

// Recover undoes [Backend.Fail].
func (b *Backend) Recover(method, path string) {
	b.mu.Lock()
	delete(b.failures, routeKey(method, path))
	b.mu.Unlock()
}

// Hits returns how many requests method+path received, failed ones included.
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests[routeKey(method, path)])
}

// Requests returns the recorded requests for method+path.
func (b *Backend) Requests(method, path string) []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests[routeKey(method, path)]...)
}

// LastRequest returns the most recent request for method+path, or nil.
func (b *Backend) LastRequest(method, path string) *RecordedRequest {
	reqs := b.Requests(method, path)
	if len(reqs) == 0 {
		return nil
	}
	return &reqs[len(reqs)-1]
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := routeKey(r.Method, r.URL.Path)

	b.mu.Lock()
	b.requests[key] = append(b.requests[key], RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	fail, failing := b.failures[key]
	rt, found := b.routes[key]
	b.mu.Unlock()

	if failing {
		w.WriteHeader(fail.status)
		if fail.detail != "" {
			json.NewEncoder(w).Encode(map[string]string{"detail": fail.detail})
		}
		return
	}

	if !found {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not Found"})
		return
	}

	if rt.handler != nil {
		r.Body = io.NopCloser(bytes.NewReader(body))
		rt.handler(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	if rt.body != nil {
		json.NewEncoder(w).Encode(rt.body)
	}
}
