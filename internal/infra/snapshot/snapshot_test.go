package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/condition"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "run.sav")

	p := actor.NewPlayer("P001", "Archivist")
	p.Depth = 9
	p.MaxDepth = 14
	p.SetTimed(condition.Poisoned, 6)

	require.NoError(t, Write(path, &Save{
		GameID:   "GAME_1",
		Turn:     12345,
		DayCount: 3,
		Seed:     777,
		Player:   p,
	}))

	got, err := Read(path)
	require.NoError(t, err)

	require.Equal(t, SaveVersion, got.Version)
	require.Equal(t, "GAME_1", got.GameID)
	require.Equal(t, int64(12345), got.Turn)
	require.Equal(t, 3, got.DayCount)
	require.Equal(t, int64(777), got.Seed)
	require.Equal(t, "Archivist", got.Player.Name)
	require.Equal(t, 9, got.Player.Depth)
	require.Equal(t, 6, got.Player.TimedValue(condition.Poisoned))
}

func TestSnapshotRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.sav")

	require.NoError(t, Write(path, &Save{
		Version: SaveVersion + 1,
		GameID:  "GAME_1",
		Player:  actor.NewPlayer("P001", "Traveller"),
	}))

	_, err := Read(path)
	require.Error(t, err)
}

func TestSnapshotRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.sav")
	require.NoError(t, os.WriteFile(path, []byte("this is not a snapshot"), 0644))

	_, err := Read(path)
	require.Error(t, err)
}

func TestSnapshotWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.sav")

	require.NoError(t, Write(path, &Save{
		GameID: "GAME_1",
		Player: actor.NewPlayer("P001", "Traveller"),
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the final file should remain")
	require.Equal(t, "run.sav", entries[0].Name())
}

func TestSnapshotReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.sav"))
	require.Error(t, err)
}
