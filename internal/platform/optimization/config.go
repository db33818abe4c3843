// Package optimization provides concurrency tuning for high load.
package optimization

import (
	"database/sql"
	"runtime"
)

// Config holds tuned parameters for high-load scenarios.
type Config struct {
	// Channel buffer sizes
	BroadcastChannelBuffer int
	ClientSendBuffer       int

	// Connection pools
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Rate limiting
	MaxMessagesPerSecond int
	MaxClientsPerSession int
}

// DefaultConfig returns sensible defaults for production.
func DefaultConfig() *Config {
	numCPU := runtime.NumCPU()

	return &Config{
		// Channel buffers - larger = more memory, less blocking
		BroadcastChannelBuffer: 256,
		ClientSendBuffer:       64,

		// SQLite serializes writes anyway; a small pool keeps readers
		// from starving the event persister.
		DBMaxOpenConns: numCPU,
		DBMaxIdleConns: numCPU / 2,

		MaxMessagesPerSecond: 100,
		MaxClientsPerSession: 512,
	}
}

// ApplyDB sets the connection pool limits on a database handle.
func (c *Config) ApplyDB(db *sql.DB) {
	db.SetMaxOpenConns(c.DBMaxOpenConns)
	db.SetMaxIdleConns(c.DBMaxIdleConns)
}
