package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lyminhthai2009/tank-duel/internal/game"
)

func sample() game.SaveState {
	return game.SaveState{
		Level:        3,
		PlayerHealth: 72,
		PlayerAmmoCounts: map[game.AmmoID]int{
			game.AmmoNormal:  game.Unlimited,
			game.AmmoCluster: 1,
			game.AmmoHeavy:   0,
		},
	}
}

func checkRoundTrip(t *testing.T, s game.Store) {
	t.Helper()
	st, err := s.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if st != nil {
		t.Fatalf("expected no record, got %+v", st)
	}

	if err := s.Save(sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	st, err = s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st == nil || st.Level != 3 || st.PlayerHealth != 72 {
		t.Fatalf("unexpected record %+v", st)
	}
	if st.PlayerAmmoCounts[game.AmmoNormal] != game.Unlimited {
		t.Errorf("normal count = %d, want unlimited", st.PlayerAmmoCounts[game.AmmoNormal])
	}
	if st.PlayerAmmoCounts[game.AmmoCluster] != 1 {
		t.Errorf("cluster count = %d, want 1", st.PlayerAmmoCounts[game.AmmoCluster])
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	st, err = s.Load()
	if err != nil || st != nil {
		t.Fatalf("after clear got %+v, %v", st, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestJSONFile_RoundTrip(t *testing.T) {
	s, err := OpenJSON(filepath.Join(t.TempDir(), "nested", "save.json"))
	if err != nil {
		t.Fatal(err)
	}
	checkRoundTrip(t, s)
}

func TestJSONFile_WireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s, err := OpenJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(game.SaveState{Level: 2, PlayerHealth: 100, PlayerAmmoCounts: map[game.AmmoID]int{game.AmmoNormal: -1}}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"level":2,"playerHealth":100,"playerAmmoCounts":{"normal":-1}}`
	if string(b) != want {
		t.Errorf("file = %s, want %s", b, want)
	}
}

func TestJSONFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Load()
	if !errors.Is(err, game.ErrCorruptSave) {
		t.Fatalf("expected ErrCorruptSave, got %v", err)
	}
}

func TestSQLite_RoundTripAndHistory(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "save.db"), "slot")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	checkRoundTrip(t, s)

	st := sample()
	st.Level = 5
	if err := s.Save(st); err != nil {
		t.Fatal(err)
	}
	n, err := s.RoundsCleared()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("rounds cleared = %d, want 2", n)
	}
	best, err := s.BestLevel()
	if err != nil {
		t.Fatal(err)
	}
	if best != 4 {
		t.Errorf("best level = %d, want 4", best)
	}
}

func TestSQLite_ReopenKeepsRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.db")
	s, err := OpenSQLite(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(sample()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = OpenSQLite(path, "")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	st, err := s.Load()
	if err != nil || st == nil || st.Level != 3 {
		t.Fatalf("reopened record %+v, %v", st, err)
	}
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"json", "sqlite", "none"} {
		b, err := Open(game.SaveConfig{Backend: name, Path: filepath.Join(dir, "save."+name), Key: "k"})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		checkRoundTrip(t, b)
		if err := b.Close(); err != nil {
			t.Errorf("%s close: %v", name, err)
		}
	}
	if _, err := Open(game.SaveConfig{Backend: "cloud"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
