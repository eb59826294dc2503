package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsValidate(t *testing.T) {
	checks := []struct {
		id   string
		load func() (validator, error)
	}{
		{GameShooter, func() (validator, error) { return Default[ShooterConfig](GameShooter) }},
		{GameShooterClassic, func() (validator, error) { return Default[ShooterConfig](GameShooterClassic) }},
		{GameRunner, func() (validator, error) { return Default[RunnerConfig](GameRunner) }},
		{GameTowerDefense, func() (validator, error) { return Default[TowerDefenseConfig](GameTowerDefense) }},
		{GameMatch3, func() (validator, error) { return Default[Match3Config](GameMatch3) }},
		{GameSnake, func() (validator, error) { return Default[SnakeConfig](GameSnake) }},
		{GameRacing, func() (validator, error) { return Default[RacingConfig](GameRacing) }},
	}

	for _, tc := range checks {
		t.Run(tc.id, func(t *testing.T) {
			cfg, err := tc.load()
			if err != nil {
				t.Fatalf("Default() failed: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("embedded default does not validate: %v", err)
			}
		})
	}

	if _, err := Default[SnakeConfig]("pinball"); err == nil {
		t.Error("Default() for an unknown game should fail")
	}
}

func TestShooterDefaults(t *testing.T) {
	cfg, err := Default[ShooterConfig](GameShooter)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Enemies) != 3 {
		t.Fatalf("enemy kinds = %d, expected 3", len(cfg.Enemies))
	}
	bomber := cfg.Enemies[2]
	if bomber.Name != "bomber" || bomber.Health != 4 || bomber.Points != 30 {
		t.Errorf("bomber = %+v", bomber)
	}
	if cfg.Spawn.Period != 1.2 || cfg.Levels.ScorePerLevel != 200 {
		t.Errorf("spawn period %v, score per level %d", cfg.Spawn.Period, cfg.Levels.ScorePerLevel)
	}

	classic, err := Default[ShooterConfig](GameShooterClassic)
	if err != nil {
		t.Fatal(err)
	}
	if classic.Collision.Shape != "rect" || classic.Enemies[0].Points != 10 {
		t.Errorf("classic variant = %+v", classic.Collision)
	}
}

func TestRacingValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RacingConfig)
	}{
		{"short track", func(c *RacingConfig) { c.Track = c.Track[:2] }},
		{"no laps", func(c *RacingConfig) { c.Laps = 0 }},
		{"bump above one", func(c *RacingConfig) { c.Bump = 1.5 }},
		{"friction zero", func(c *RacingConfig) { c.Player.Friction = 0 }},
		{"margin fills world", func(c *RacingConfig) { c.Player.Margin = 200 }},
		{"steer above one", func(c *RacingConfig) { c.Opponents.Steer = 2 }},
		{"negative penalty", func(c *RacingConfig) { c.Scoring.PerRival = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default[RacingConfig](GameRacing)
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "m.yaml")
	writeFile(t, yamlPath, "moves: 12\n")
	cfg, src, err := LoadMatch3(yamlPath)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Moves != 12 || cfg.Rows != 8 || string(src) != yamlPath {
		t.Errorf("got moves=%d rows=%d src=%s", cfg.Moves, cfg.Rows, src)
	}

	tomlPath := filepath.Join(dir, "m.toml")
	writeFile(t, tomlPath, "gems = 5\ntarget_score = 0\n")
	cfg, _, err = LoadMatch3(tomlPath)
	if err != nil {
		t.Fatalf("LoadMatch3(toml) failed: %v", err)
	}
	if cfg.Gems != 5 || cfg.TargetScore != 0 || cfg.Moves != 30 {
		t.Errorf("toml overlay = %+v", cfg)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{"unknown yaml key", "a.yaml", "lives: 3\n", false},
		{"unknown toml key", "b.toml", "lives = 3\n", true},
		{"failed validation", "c.yaml", "rows: 2\n", true},
		{"broken yaml", "d.yaml", "rows: [\n", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			writeFile(t, path, tc.content)
			_, _, err := LoadMatch3(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.invalid && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}

	if _, _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	userFile := filepath.Join(home, ".arcade", "configs", "snake.yaml")
	writeFile(t, userFile, "win_length: 40\n")
	writeFile(t, filepath.Join(work, "configs", "snake.toml"), "win_length = 30\n")

	cfg, src, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.WinLength != 40 || string(src) != userFile {
		t.Errorf("user config not preferred: win_length=%d src=%s", cfg.WinLength, src)
	}

	if err := os.Remove(userFile); err != nil {
		t.Fatal(err)
	}
	cfg, src, err = LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.WinLength != 30 || src != Source(filepath.Join("configs", "snake.toml")) {
		t.Errorf("local config not used: win_length=%d src=%s", cfg.WinLength, src)
	}

	if err := os.RemoveAll(filepath.Join(work, "configs")); err != nil {
		t.Fatal(err)
	}
	cfg, src, err = LoadSnake("")
	if err != nil || src != SourceEmbedded || cfg.WinLength != 60 {
		t.Errorf("embedded fallback: win_length=%d src=%s err=%v", cfg.WinLength, src, err)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DifficultyConfig{Enabled: true, InitialLevel: 0.1}

	if err := ApplyPreset(&cfg, ""); err != nil || cfg.InitialLevel != 0.1 {
		t.Errorf("empty preset changed config: %+v, %v", cfg, err)
	}
	if err := ApplyPreset(&cfg, "hard"); err != nil || cfg.InitialLevel != 0.7 {
		t.Errorf("hard preset: %+v, %v", cfg, err)
	}
	if err := ApplyPreset(&cfg, "fixed"); err != nil || cfg.Enabled {
		t.Errorf("fixed preset should disable progression: %+v, %v", cfg, err)
	}
	if err := ApplyPreset(&cfg, "brutal"); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown preset error = %v", err)
	}
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, SpawnMultiplier: 1.0},
	})

	approx := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

	if got := dm.Level(0, 0); !approx(got, 0.2) {
		t.Errorf("Level(0) = %v, expected 0.2", got)
	}
	if got := dm.Level(50, 0); !approx(got, 0.6) {
		t.Errorf("Level(50) = %v, expected 0.6", got)
	}
	if got := dm.Level(500, 0); !approx(got, 1.0) {
		t.Errorf("Level(500) = %v, expected 1.0", got)
	}
	if got := dm.Speed(4, 500, 0); !approx(got, 8) {
		t.Errorf("Speed at max = %v, expected 8", got)
	}
	if got := dm.Rate(0.8, 500, 0); got != 1 {
		t.Errorf("Rate should cap at 1, got %v", got)
	}
	if got := dm.Period(1.2, 500, 0); !approx(got, 0.6) {
		t.Errorf("Period at max = %v, expected 0.6", got)
	}

	off := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 0})
	if off.IsEnabled() || off.Speed(3, 1000, 1000) != 3 {
		t.Error("disabled manager should leave speeds unchanged")
	}
}
