// Package metrics provides observability for the life server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers simulation and transport counters.
type Collector struct {
	// Year-tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Enrollment metrics
	EnrollmentsOK       int64
	EnrollmentsRejected int64
	rejectionsByReason  map[string]int64

	// Action metrics
	actionCounts map[string]int64

	// Audit-event metrics
	EventsWritten    int64
	EventWriteErrors int64

	// Save metrics
	SaveWrites      int64
	SaveWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime:          time.Now(),
	rejectionsByReason: make(map[string]int64),
	actionCounts:       make(map[string]int64),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records one completed year advancement.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordEnrollment records an enrollment attempt outcome. reason is
// empty on success.
func (c *Collector) RecordEnrollment(ok bool, reason string) {
	if ok {
		atomic.AddInt64(&c.EnrollmentsOK, 1)
		return
	}
	atomic.AddInt64(&c.EnrollmentsRejected, 1)
	c.mu.Lock()
	c.rejectionsByReason[reason]++
	c.mu.Unlock()
}

// RecordAction records one invocation of a named life action.
func (c *Collector) RecordAction(name string) {
	c.mu.Lock()
	c.actionCounts[name]++
	c.mu.Unlock()
}

// RecordEventWrite records an audit event write to the database.
func (c *Collector) RecordEventWrite(err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordSaveWrite records a snapshot write to a save slot.
func (c *Collector) RecordSaveWrite(err error) {
	atomic.AddInt64(&c.SaveWrites, 1)
	if err != nil {
		atomic.AddInt64(&c.SaveWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	var tickAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}

	reasons := make(map[string]int64, len(c.rejectionsByReason))
	for k, v := range c.rejectionsByReason {
		reasons[k] = v
	}
	actions := make(map[string]int64, len(c.actionCounts))
	for k, v := range c.actionCounts {
		actions[k] = v
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"ticks": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"enrollments": map[string]interface{}{
			"ok":        atomic.LoadInt64(&c.EnrollmentsOK),
			"rejected":  atomic.LoadInt64(&c.EnrollmentsRejected),
			"by_reason": reasons,
		},

		"actions": actions,

		"events": map[string]interface{}{
			"written": atomic.LoadInt64(&c.EventsWritten),
			"errors":  atomic.LoadInt64(&c.EventWriteErrors),
		},

		"saves": map[string]interface{}{
			"writes": atomic.LoadInt64(&c.SaveWrites),
			"errors": atomic.LoadInt64(&c.SaveWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus text format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP simslyfe_tick_count Total year advancements\n")
		fmt.Fprintf(w, "# TYPE simslyfe_tick_count counter\n")
		fmt.Fprintf(w, "simslyfe_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP simslyfe_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE simslyfe_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "simslyfe_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP simslyfe_enrollments_total Enrollment attempts by outcome\n")
		fmt.Fprintf(w, "# TYPE simslyfe_enrollments_total counter\n")
		fmt.Fprintf(w, "simslyfe_enrollments_total{outcome=\"ok\"} %d\n", atomic.LoadInt64(&c.EnrollmentsOK))
		fmt.Fprintf(w, "simslyfe_enrollments_total{outcome=\"rejected\"} %d\n\n", atomic.LoadInt64(&c.EnrollmentsRejected))

		c.mu.RLock()
		reasons := make([]string, 0, len(c.rejectionsByReason))
		for reason := range c.rejectionsByReason {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		fmt.Fprintf(w, "# HELP simslyfe_enrollment_rejections_total Rejections by reason\n")
		fmt.Fprintf(w, "# TYPE simslyfe_enrollment_rejections_total counter\n")
		for _, reason := range reasons {
			fmt.Fprintf(w, "simslyfe_enrollment_rejections_total{reason=%q} %d\n", reason, c.rejectionsByReason[reason])
		}
		fmt.Fprintln(w)

		names := make([]string, 0, len(c.actionCounts))
		for name := range c.actionCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "# HELP simslyfe_actions_total Life actions by name\n")
		fmt.Fprintf(w, "# TYPE simslyfe_actions_total counter\n")
		for _, name := range names {
			fmt.Fprintf(w, "simslyfe_actions_total{action=%q} %d\n", name, c.actionCounts[name])
		}
		c.mu.RUnlock()
		fmt.Fprintln(w)

		fmt.Fprintf(w, "# HELP simslyfe_events_written Total audit events written\n")
		fmt.Fprintf(w, "# TYPE simslyfe_events_written counter\n")
		fmt.Fprintf(w, "simslyfe_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP simslyfe_event_write_errors Total audit event write errors\n")
		fmt.Fprintf(w, "# TYPE simslyfe_event_write_errors counter\n")
		fmt.Fprintf(w, "simslyfe_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		fmt.Fprintf(w, "# HELP simslyfe_save_writes Total snapshot save writes\n")
		fmt.Fprintf(w, "# TYPE simslyfe_save_writes counter\n")
		fmt.Fprintf(w, "simslyfe_save_writes %d\n\n", atomic.LoadInt64(&c.SaveWrites))

		fmt.Fprintf(w, "# HELP simslyfe_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE simslyfe_ws_connections gauge\n")
		fmt.Fprintf(w, "simslyfe_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP simslyfe_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE simslyfe_ws_messages_total counter\n")
		fmt.Fprintf(w, "simslyfe_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "simslyfe_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
