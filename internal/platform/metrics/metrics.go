// Package metrics provides observability for the game server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance metrics.
type Collector struct {
	// Round metrics: one round is one pass of the main loop.
	RoundCount      int64
	RoundLatencySum int64 // nanoseconds
	RoundLatencyMax int64
	LastRoundTime   time.Time

	// World tick metrics: the every-ten-turns world processor.
	WorldTickCount      int64
	WorldTickLatencySum int64
	WorldTickLatencyMax int64

	// Event metrics
	EventsWritten    int64
	EventWriteLatSum int64
	EventWriteLatMax int64
	EventWriteErrors int64

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
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordRound records one main-loop round completion.
func (c *Collector) RecordRound(latency time.Duration) {
	atomic.AddInt64(&c.RoundCount, 1)
	atomic.AddInt64(&c.RoundLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.RoundLatencyMax) {
		atomic.StoreInt64(&c.RoundLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastRoundTime = time.Now()
	c.mu.Unlock()
}

// RecordWorldTick records a world tick completion.
func (c *Collector) RecordWorldTick(latency time.Duration) {
	atomic.AddInt64(&c.WorldTickCount, 1)
	atomic.AddInt64(&c.WorldTickLatencySum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.WorldTickLatencyMax) {
		atomic.StoreInt64(&c.WorldTickLatencyMax, int64(latency))
	}
}

// RecordEventWrite records an event write to the database.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
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

	roundCount := atomic.LoadInt64(&c.RoundCount)
	tickCount := atomic.LoadInt64(&c.WorldTickCount)
	eventsWritten := atomic.LoadInt64(&c.EventsWritten)

	// Calculate averages
	var roundAvg, tickAvg, eventAvg float64
	if roundCount > 0 {
		roundAvg = float64(atomic.LoadInt64(&c.RoundLatencySum)) / float64(roundCount) / 1e6 // ms
	}
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.WorldTickLatencySum)) / float64(tickCount) / 1e6
	}
	if eventsWritten > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"round": map[string]interface{}{
			"count":          roundCount,
			"avg_latency_ms": roundAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.RoundLatencyMax)) / 1e6,
			"last_round":     c.LastRoundTime.Format(time.RFC3339),
		},

		"world_tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.WorldTickLatencyMax)) / 1e6,
		},

		"events": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": eventAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
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

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		// Round metrics
		fmt.Fprintf(w, "# HELP angband_round_count Total main-loop rounds\n")
		fmt.Fprintf(w, "# TYPE angband_round_count counter\n")
		fmt.Fprintf(w, "angband_round_count %d\n\n", atomic.LoadInt64(&c.RoundCount))

		fmt.Fprintf(w, "# HELP angband_round_latency_max_ms Maximum round latency\n")
		fmt.Fprintf(w, "# TYPE angband_round_latency_max_ms gauge\n")
		fmt.Fprintf(w, "angband_round_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.RoundLatencyMax))/1e6)

		// World tick metrics
		fmt.Fprintf(w, "# HELP angband_world_tick_count Total world ticks\n")
		fmt.Fprintf(w, "# TYPE angband_world_tick_count counter\n")
		fmt.Fprintf(w, "angband_world_tick_count %d\n\n", atomic.LoadInt64(&c.WorldTickCount))

		// Event metrics
		fmt.Fprintf(w, "# HELP angband_events_written Total events written\n")
		fmt.Fprintf(w, "# TYPE angband_events_written counter\n")
		fmt.Fprintf(w, "angband_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP angband_event_write_errors Total event write errors\n")
		fmt.Fprintf(w, "# TYPE angband_event_write_errors counter\n")
		fmt.Fprintf(w, "angband_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		// WebSocket metrics
		fmt.Fprintf(w, "# HELP angband_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE angband_ws_connections gauge\n")
		fmt.Fprintf(w, "angband_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP angband_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE angband_ws_messages_total counter\n")
		fmt.Fprintf(w, "angband_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "angband_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
