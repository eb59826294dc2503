package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/frame-arcade/internal/scores"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return store, dbPath
}

func TestStoreOpenClose(t *testing.T) {
	store, dbPath := openTemp(t)
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreGetSet(t *testing.T) {
	store, _ := openTemp(t)
	defer store.Close()

	if _, ok, err := store.Get("snake-highscore"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	if err := store.Set("snake-highscore", "120"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("snake-highscore", "150"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("snake-highscore")
	if err != nil || !ok || v != "150" {
		t.Errorf("Get() = %q, %v, %v; expected \"150\"", v, ok, err)
	}

	if err := store.Delete("snake-highscore"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("snake-highscore"); ok {
		t.Error("key still present after Delete")
	}
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete() of a missing key = %v", err)
	}
}

func TestStoreEntries(t *testing.T) {
	store, _ := openTemp(t)
	defer store.Close()

	for k, v := range map[string]string{
		"snake-highscore":  "10",
		"runner-highscore": "20",
		"settings-volume":  "3",
	} {
		if err := store.Set(k, v); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	entries, err := store.EntriesWithSuffix(scores.KeySuffix)
	if err != nil {
		t.Fatalf("EntriesWithSuffix() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "runner-highscore" || entries[1].Key != "snake-highscore" {
		t.Errorf("entries = %+v", entries)
	}

	entries, err = store.Entries("settings")
	if err != nil || len(entries) != 1 || entries[0].Value != "3" {
		t.Errorf("Entries(settings) = %+v, %v", entries, err)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt was not parsed")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	store, dbPath := openTemp(t)

	bridge := scores.NewBridge(store, nil)
	bridge.ReportScore("match3", 900)
	bridge.ReportScore("match3", 400)
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if got := scores.NewBridge(reopened, nil).LoadBest("match3"); got != 900 {
		t.Errorf("LoadBest() after reopen = %d, expected 900", got)
	}
}
