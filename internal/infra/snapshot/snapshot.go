// Package snapshot writes and reads portable save files: a single
// zstd-compressed JSON document holding the world clock and the full
// character sheet. The SQLite store is the live database; snapshots
// are for export, backup, and headless-run reproduction.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/philyawj/angband/internal/domain/actor"
)

// SaveVersion guards against loading snapshots from incompatible
// builds.
const SaveVersion = 1

// Save is the on-disk snapshot document.
type Save struct {
	Version  int           `json:"version"`
	GameID   string        `json:"game_id"`
	Turn     int64         `json:"turn"`
	DayCount int           `json:"day_count"`
	Seed     int64         `json:"seed"`
	Player   *actor.Player `json:"player"`
}

// Write encodes and compresses the save to path, creating parent
// directories as needed. The file is written atomically via a rename.
func Write(path string, save *Save) error {
	if save.Version == 0 {
		save.Version = SaveVersion
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	raw, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Read loads and verifies a snapshot from path.
func Read(path string) (*Save, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	var save Save
	if err := json.NewDecoder(dec.IOReadCloser()).Decode(&save); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if save.Version != SaveVersion {
		return nil, fmt.Errorf("snapshot version %d is not supported (want %d)", save.Version, SaveVersion)
	}
	return &save, nil
}
