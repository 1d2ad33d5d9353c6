package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory request, error and denial counters. Counters
// reset on restart; they exist for local inspection, not for scraping.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	deniedCount  map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		deniedCount:  make(map[string]int64),
	}
}

// RecordRequest counts one completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError counts one structured error response.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordDenied counts one refused content access, keyed by resource
// class and refusal reason.
func (m *Metrics) RecordDenied(class, reason string) {
	if m == nil {
		return
	}
	key := class + "|" + reason
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deniedCount[key]++
}

// DeniedCount reports accumulated denials for a class and reason.
func (m *Metrics) DeniedCount(class, reason string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deniedCount[class+"|"+reason]
}
