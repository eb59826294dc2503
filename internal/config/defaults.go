package config

import (
	"embed"
	"path"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Game IDs that ship embedded defaults.
const (
	GameShooter        = "space-shooter"
	GameShooterClassic = "space-shooter-classic"
	GameRunner         = "runner"
	GameTowerDefense   = "towerdefense"
	GameMatch3         = "match3"
	GameSnake          = "snake"
	GameRacing         = "racing"
)

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(gameID string) []byte {
	data, err := defaultFS.ReadFile(path.Join("defaults", gameID+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// LoadShooter loads a Space Shooter variant's configuration.
func LoadShooter(gameID, customPath string) (ShooterConfig, Source, error) {
	return Load[ShooterConfig](gameID, customPath)
}

// LoadRunner loads Gravity Runner configuration.
func LoadRunner(customPath string) (RunnerConfig, Source, error) {
	return Load[RunnerConfig](GameRunner, customPath)
}

// LoadTowerDefense loads Tower Defense configuration.
func LoadTowerDefense(customPath string) (TowerDefenseConfig, Source, error) {
	return Load[TowerDefenseConfig](GameTowerDefense, customPath)
}

// LoadMatch3 loads Match-3 configuration.
func LoadMatch3(customPath string) (Match3Config, Source, error) {
	return Load[Match3Config](GameMatch3, customPath)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, Source, error) {
	return Load[SnakeConfig](GameSnake, customPath)
}

// LoadRacing loads Racing configuration.
func LoadRacing(customPath string) (RacingConfig, Source, error) {
	return Load[RacingConfig](GameRacing, customPath)
}
