package observability

import (
	"sync"
	"time"
)

type requestKey struct {
	Path   string
	Method string
	Status int
}

type errorKey struct {
	Path   string
	Method string
	Code   string
}

// Metrics keeps in-process request and error counters. Nil receivers are
// safe so wiring can stay optional.
type Metrics struct {
	mu       sync.RWMutex
	requests map[requestKey]int64
	errors   map[errorKey]int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[requestKey]int64),
		errors:   make(map[errorKey]int64),
	}
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.requests[requestKey{Path: path, Method: method, Status: status}]++
	m.mu.Unlock()
}

// RecordError counts a request that ended in a domain error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.errors[errorKey{Path: path, Method: method, Code: code}]++
	m.mu.Unlock()
}

// ErrorCount reports how many requests on the path failed with the code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[errorKey{Path: path, Method: method, Code: code}]
}
