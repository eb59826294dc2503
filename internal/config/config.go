// Package config provides YAML/TOML game configuration loading, validation
// and difficulty management for the arcade games.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/frame-arcade/internal/entity"
)

// ErrInvalid is returned for configurations that fail validation.
var ErrInvalid = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// WorldConfig is the size of a game's world in canvas pixels.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

func (w WorldConfig) validate() error {
	if !(w.Width > 0) || !(w.Height > 0) || math.IsInf(w.Width, 0) || math.IsInf(w.Height, 0) {
		return invalid("world size %vx%v", w.Width, w.Height)
	}
	return nil
}

// ShooterConfig contains all configuration for a Space Shooter variant.
type ShooterConfig struct {
	Variant    string             `yaml:"variant" toml:"variant"` // "tiered" or "classic"
	World      WorldConfig        `yaml:"world" toml:"world"`
	Player     ShooterPlayer      `yaml:"player" toml:"player"`
	Bullets    ShooterBullets     `yaml:"bullets" toml:"bullets"`
	Spawn      entity.SpawnConfig `yaml:"spawn" toml:"spawn"`
	Enemies    []EnemyKind        `yaml:"enemies" toml:"enemies"`
	Collision  ShooterCollision   `yaml:"collision" toml:"collision"`
	Levels     ShooterLevels      `yaml:"levels" toml:"levels"`
	Particles  ParticleConfig     `yaml:"particles" toml:"particles"`
	Difficulty DifficultyConfig   `yaml:"difficulty" toml:"difficulty"`
}

// ShooterPlayer defines the ship.
type ShooterPlayer struct {
	Step     float64 `yaml:"step" toml:"step"`         // Pixels moved per key press
	Margin   float64 `yaml:"margin" toml:"margin"`     // Closest distance to the side walls
	BottomY  float64 `yaml:"bottom_y" toml:"bottom_y"` // Distance of the ship from the bottom edge
	Cooldown float64 `yaml:"cooldown" toml:"cooldown"` // Seconds between shots
}

// ShooterBullets defines the player's shots.
type ShooterBullets struct {
	Speed  float64 `yaml:"speed" toml:"speed"` // Pixels per reference frame, upwards
	Damage int     `yaml:"damage" toml:"damage"`
}

// EnemyKind is one enemy type. Speed is Speed + SpeedPerLevel*level.
type EnemyKind struct {
	Name          string  `yaml:"name" toml:"name"`
	Health        int     `yaml:"health" toml:"health"`
	Speed         float64 `yaml:"speed" toml:"speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level" toml:"speed_per_level"`
	SpeedJitter   float64 `yaml:"speed_jitter" toml:"speed_jitter"` // Random extra speed in [0, jitter)
	Points        int     `yaml:"points" toml:"points"`
	Size          float64 `yaml:"size" toml:"size"`
	UnlockLevel   int     `yaml:"unlock_level" toml:"unlock_level"`
}

// ShooterCollision selects the hit test.
// "circle" compares center distances against the hit distances;
// "rect" uses BoxSize boxes for enemies.
type ShooterCollision struct {
	Shape      string  `yaml:"shape" toml:"shape"`
	BulletHit  float64 `yaml:"bullet_hit" toml:"bullet_hit"`
	PlayerHit  float64 `yaml:"player_hit" toml:"player_hit"`
	BoxSize    float64 `yaml:"box_size" toml:"box_size"`
	PlayerZone float64 `yaml:"player_zone" toml:"player_zone"` // Rect mode: height of the danger strip above the bottom
}

// ShooterLevels defines level progression.
type ShooterLevels struct {
	ScorePerLevel int     `yaml:"score_per_level" toml:"score_per_level"` // 0 disables levels
	PeriodStep    float64 `yaml:"period_step" toml:"period_step"`         // Seconds removed from the spawn period per level
	PeriodMaxCut  float64 `yaml:"period_max_cut" toml:"period_max_cut"`
}

// ParticleConfig defines explosion particles.
type ParticleConfig struct {
	Life    float64 `yaml:"life" toml:"life"` // Reference frames
	Gravity float64 `yaml:"gravity" toml:"gravity"`
	Drag    float64 `yaml:"drag" toml:"drag"`   // Velocity multiplier per reference frame, 0 disables
	Hit     int     `yaml:"hit" toml:"hit"`     // Particles for a hit
	Burst   int     `yaml:"burst" toml:"burst"` // Particles for a kill
}

// Validate checks the shooter configuration.
func (c ShooterConfig) Validate() error {
	if c.Variant != "tiered" && c.Variant != "classic" {
		return invalid("shooter variant %q", c.Variant)
	}
	if err := c.World.validate(); err != nil {
		return err
	}
	if err := c.Spawn.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Enemies) == 0 {
		return invalid("shooter needs at least one enemy kind")
	}
	for _, e := range c.Enemies {
		if e.Health <= 0 || e.Speed <= 0 || e.Size <= 0 {
			return invalid("enemy %q needs positive health, speed and size", e.Name)
		}
	}
	if c.Bullets.Speed <= 0 {
		return invalid("bullet speed %v", c.Bullets.Speed)
	}
	switch c.Collision.Shape {
	case "circle":
		if c.Collision.BulletHit <= 0 || c.Collision.PlayerHit <= 0 {
			return invalid("circle collision needs positive hit distances")
		}
	case "rect":
		if c.Collision.BoxSize <= 0 {
			return invalid("rect collision needs a positive box size")
		}
	default:
		return invalid("collision shape %q", c.Collision.Shape)
	}
	return c.Difficulty.validate()
}

// RunnerConfig contains all configuration for the Gravity Runner game.
type RunnerConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Physics    RunnerPhysics    `yaml:"physics" toml:"physics"`
	Player     RunnerPlayer     `yaml:"player" toml:"player"`
	Levels     []RunnerLevel    `yaml:"levels" toml:"levels"`
	Obstacles  RunnerObstacles  `yaml:"obstacles" toml:"obstacles"`
	Coins      RunnerCoins      `yaml:"coins" toml:"coins"`
	Scoring    RunnerScoring    `yaml:"scoring" toml:"scoring"`
	Particles  ParticleConfig   `yaml:"particles" toml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// RunnerPhysics defines gravity and the corridor.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	GroundHeight float64 `yaml:"ground_height" toml:"ground_height"`
}

// RunnerPlayer defines the runner.
type RunnerPlayer struct {
	X        float64 `yaml:"x" toml:"x"`
	Size     float64 `yaml:"size" toml:"size"`
	HitScale float64 `yaml:"hit_scale" toml:"hit_scale"` // Hitbox half size as a fraction of Size
}

// RunnerLevel is one speed tier.
type RunnerLevel struct {
	Name           string  `yaml:"name" toml:"name"`
	Speed          float64 `yaml:"speed" toml:"speed"`
	ObstacleChance float64 `yaml:"obstacle_chance" toml:"obstacle_chance"`
}

// RunnerObstacles defines obstacle geometry.
type RunnerObstacles struct {
	MinGap       float64 `yaml:"min_gap" toml:"min_gap"` // Minimum distance from the previous obstacle
	MinWidth     float64 `yaml:"min_width" toml:"min_width"`
	MaxWidth     float64 `yaml:"max_width" toml:"max_width"`
	MinHeight    float64 `yaml:"min_height" toml:"min_height"`
	MaxHeight    float64 `yaml:"max_height" toml:"max_height"`
	MovingChance float64 `yaml:"moving_chance" toml:"moving_chance"`
	Wobble       float64 `yaml:"wobble" toml:"wobble"` // Vertical amplitude per reference frame for moving obstacles
}

// RunnerCoins defines coins.
type RunnerCoins struct {
	Spawn  entity.SpawnConfig `yaml:"spawn" toml:"spawn"`
	Radius float64            `yaml:"radius" toml:"radius"`
	Points int                `yaml:"points" toml:"points"`
}

// RunnerScoring defines distance scoring.
type RunnerScoring struct {
	DistancePerSpeed float64 `yaml:"distance_per_speed" toml:"distance_per_speed"`
	DistancePoints   float64 `yaml:"distance_points" toml:"distance_points"`
	LevelDistance    float64 `yaml:"level_distance" toml:"level_distance"`
}

// Validate checks the runner configuration.
func (c RunnerConfig) Validate() error {
	if err := c.World.validate(); err != nil {
		return err
	}
	if c.Physics.Gravity <= 0 {
		return invalid("gravity %v", c.Physics.Gravity)
	}
	if 2*c.Physics.GroundHeight+c.Player.Size >= c.World.Height {
		return invalid("corridor too narrow for the player")
	}
	if len(c.Levels) == 0 {
		return invalid("runner needs at least one level")
	}
	for i, l := range c.Levels {
		if l.Speed <= 0 {
			return invalid("level %d speed %v", i+1, l.Speed)
		}
		if err := (entity.SpawnConfig{Mode: "chance", Chance: l.ObstacleChance}).Validate(); err != nil {
			return fmt.Errorf("%w: level %d: %w", ErrInvalid, i+1, err)
		}
	}
	if c.Obstacles.MinWidth <= 0 || c.Obstacles.MaxWidth < c.Obstacles.MinWidth ||
		c.Obstacles.MinHeight <= 0 || c.Obstacles.MaxHeight < c.Obstacles.MinHeight {
		return invalid("obstacle size ranges")
	}
	if err := c.Coins.Spawn.Validate(); err != nil {
		return fmt.Errorf("%w: coins: %w", ErrInvalid, err)
	}
	if c.Scoring.LevelDistance <= 0 {
		return invalid("level distance %v", c.Scoring.LevelDistance)
	}
	return c.Difficulty.validate()
}

// TowerDefenseConfig contains all configuration for the Tower Defense game.
type TowerDefenseConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Path       []PathPoint      `yaml:"path" toml:"path"`
	Economy    TDEconomy        `yaml:"economy" toml:"economy"`
	Tower      TDTower          `yaml:"tower" toml:"tower"`
	Waves      TDWaves          `yaml:"waves" toml:"waves"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// PathPoint is a waypoint of the enemy path.
type PathPoint struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// TDEconomy defines money and lives.
type TDEconomy struct {
	StartMoney int `yaml:"start_money" toml:"start_money"`
	Lives      int `yaml:"lives" toml:"lives"`
	KillReward int `yaml:"kill_reward" toml:"kill_reward"`
	TowerCost  int `yaml:"tower_cost" toml:"tower_cost"`
}

// TDTower defines towers and where they may be built.
type TDTower struct {
	Range         float64 `yaml:"range" toml:"range"`
	Damage        int     `yaml:"damage" toml:"damage"`
	Cooldown      float64 `yaml:"cooldown" toml:"cooldown"`             // Reference frames between shots
	PathClearance float64 `yaml:"path_clearance" toml:"path_clearance"` // Minimum distance to the path
	Spacing       float64 `yaml:"spacing" toml:"spacing"`               // Minimum distance between towers
	CursorStep    float64 `yaml:"cursor_step" toml:"cursor_step"`       // Keyboard cursor move per press
}

// TDWaves defines wave composition. A wave w has BaseCount+CountPerWave*w
// enemies with BaseHealth+HealthPerWave*w health.
type TDWaves struct {
	BaseCount     int     `yaml:"base_count" toml:"base_count"`
	CountPerWave  int     `yaml:"count_per_wave" toml:"count_per_wave"`
	BaseHealth    int     `yaml:"base_health" toml:"base_health"`
	HealthPerWave int     `yaml:"health_per_wave" toml:"health_per_wave"`
	BaseSpeed     float64 `yaml:"base_speed" toml:"base_speed"`
	SpeedPerWave  float64 `yaml:"speed_per_wave" toml:"speed_per_wave"`
	SpawnEvery    float64 `yaml:"spawn_every" toml:"spawn_every"` // Reference frames
	WinWave       int     `yaml:"win_wave" toml:"win_wave"`       // 0 plays forever
	WavePoints    int     `yaml:"wave_points" toml:"wave_points"`
}

// Validate checks the tower defense configuration.
func (c TowerDefenseConfig) Validate() error {
	if err := c.World.validate(); err != nil {
		return err
	}
	if len(c.Path) < 2 {
		return invalid("path needs at least two points")
	}
	if c.Economy.Lives <= 0 || c.Economy.TowerCost <= 0 {
		return invalid("lives and tower cost must be positive")
	}
	if c.Tower.Range <= 0 || c.Tower.Damage <= 0 || c.Tower.Cooldown <= 0 {
		return invalid("tower range, damage and cooldown must be positive")
	}
	if c.Waves.BaseCount <= 0 || c.Waves.BaseHealth <= 0 || c.Waves.BaseSpeed <= 0 || c.Waves.SpawnEvery <= 0 {
		return invalid("wave parameters must be positive")
	}
	if c.Waves.WinWave < 0 {
		return invalid("win wave %d", c.Waves.WinWave)
	}
	return c.Difficulty.validate()
}

// Match3Config contains all configuration for the Match-3 game.
type Match3Config struct {
	Rows         int     `yaml:"rows" toml:"rows"`
	Cols         int     `yaml:"cols" toml:"cols"`
	Gems         int     `yaml:"gems" toml:"gems"`
	Moves        int     `yaml:"moves" toml:"moves"`
	PointsPerGem int     `yaml:"points_per_gem" toml:"points_per_gem"`
	ComboStep    float64 `yaml:"combo_step" toml:"combo_step"`
	MaxCombo     float64 `yaml:"max_combo" toml:"max_combo"`
	TargetScore  int     `yaml:"target_score" toml:"target_score"` // 0 disables winning
}

// Validate checks the match-3 configuration.
func (c Match3Config) Validate() error {
	if c.Rows < 3 || c.Cols < 3 {
		return invalid("board %dx%d is smaller than 3x3", c.Rows, c.Cols)
	}
	if c.Gems < 2 || c.Gems > 9 {
		return invalid("gem count %d outside [2,9]", c.Gems)
	}
	if c.Moves <= 0 {
		return invalid("moves %d", c.Moves)
	}
	if c.MaxCombo < 1 || c.ComboStep < 0 {
		return invalid("combo settings")
	}
	if c.TargetScore < 0 {
		return invalid("target score %d", c.TargetScore)
	}
	return nil
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Width         int     `yaml:"width" toml:"width"`
	Height        int     `yaml:"height" toml:"height"`
	StartLength   int     `yaml:"start_length" toml:"start_length"`
	MoveEvery     float64 `yaml:"move_every" toml:"move_every"` // Reference frames per cell
	MinMoveEvery  float64 `yaml:"min_move_every" toml:"min_move_every"`
	SpeedUp       float64 `yaml:"speed_up" toml:"speed_up"` // Reference frames removed per food
	PointsPerFood int     `yaml:"points_per_food" toml:"points_per_food"`
	WinLength     int     `yaml:"win_length" toml:"win_length"` // 0 disables winning

	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// Validate checks the snake configuration.
func (c SnakeConfig) Validate() error {
	if c.Width < 8 || c.Height < 6 {
		return invalid("snake grid %dx%d too small", c.Width, c.Height)
	}
	if c.StartLength < 1 || c.StartLength > c.Width-4 {
		return invalid("start length %d", c.StartLength)
	}
	if c.MoveEvery <= 0 || c.MinMoveEvery <= 0 {
		return invalid("move interval must be positive")
	}
	if c.WinLength != 0 && c.WinLength <= c.StartLength {
		return invalid("win length %d not above start length", c.WinLength)
	}
	return c.Difficulty.validate()
}

// RacingConfig contains all configuration for the Racing game.
type RacingConfig struct {
	World WorldConfig `yaml:"world" toml:"world"`
	Track []PathPoint `yaml:"track" toml:"track"` // Checkpoints in driving order; the first is the finish line

	CheckpointRadius float64 `yaml:"checkpoint_radius" toml:"checkpoint_radius"`
	Laps             int     `yaml:"laps" toml:"laps"`
	Countdown        float64 `yaml:"countdown" toml:"countdown"` // Seconds before the start
	CarRadius        float64 `yaml:"car_radius" toml:"car_radius"`
	Bump             float64 `yaml:"bump" toml:"bump"` // Speed kept after touching another car

	Player    RacingPlayer    `yaml:"player" toml:"player"`
	Opponents RacingOpponents `yaml:"opponents" toml:"opponents"`
	Scoring   RacingScoring   `yaml:"scoring" toml:"scoring"`

	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// RacingPlayer defines the player's car. Terminals report key presses but
// not releases, so throttle and brake stay applied for Hold reference frames
// after each press.
type RacingPlayer struct {
	Start    PathPoint `yaml:"start" toml:"start"`
	Accel    float64   `yaml:"accel" toml:"accel"`
	Brake    float64   `yaml:"brake" toml:"brake"`
	MaxSpeed float64   `yaml:"max_speed" toml:"max_speed"`
	Reverse  float64   `yaml:"reverse" toml:"reverse"`   // Top speed backwards
	Friction float64   `yaml:"friction" toml:"friction"` // Speed kept per coasting frame
	TurnStep float64   `yaml:"turn_step" toml:"turn_step"`
	Hold     float64   `yaml:"hold" toml:"hold"`
	Margin   float64   `yaml:"margin" toml:"margin"` // Distance kept from the world edge
}

// RacingOpponents defines the AI cars.
type RacingOpponents struct {
	Starts      []PathPoint `yaml:"starts" toml:"starts"`
	Accel       float64     `yaml:"accel" toml:"accel"`
	TopSpeed    float64     `yaml:"top_speed" toml:"top_speed"`
	SpeedJitter float64     `yaml:"speed_jitter" toml:"speed_jitter"` // Random extra top speed per frame
	Steer       float64     `yaml:"steer" toml:"steer"`               // Share of the heading error corrected per frame
}

// RacingScoring is FinishPoints minus PerRival for each opponent that
// finished first.
type RacingScoring struct {
	FinishPoints int `yaml:"finish_points" toml:"finish_points"`
	PerRival     int `yaml:"per_rival" toml:"per_rival"`
}

// Validate checks the racing configuration.
func (c RacingConfig) Validate() error {
	if err := c.World.validate(); err != nil {
		return err
	}
	if len(c.Track) < 3 {
		return invalid("track needs at least three checkpoints")
	}
	if c.CheckpointRadius <= 0 || c.CarRadius <= 0 {
		return invalid("checkpoint and car radius must be positive")
	}
	if c.Laps <= 0 {
		return invalid("laps %d", c.Laps)
	}
	if c.Countdown < 0 {
		return invalid("countdown %v", c.Countdown)
	}
	if c.Bump < 0 || c.Bump > 1 {
		return invalid("bump %v outside [0,1]", c.Bump)
	}
	p := c.Player
	if p.Accel <= 0 || p.MaxSpeed <= 0 || p.Brake <= 0 || p.Reverse < 0 || p.TurnStep <= 0 || p.Hold <= 0 {
		return invalid("player car parameters")
	}
	if p.Friction <= 0 || p.Friction > 1 {
		return invalid("friction %v outside (0,1]", p.Friction)
	}
	if p.Margin < 0 || 2*p.Margin >= math.Min(c.World.Width, c.World.Height) {
		return invalid("margin %v", p.Margin)
	}
	o := c.Opponents
	if o.Accel <= 0 || o.TopSpeed <= 0 || o.SpeedJitter < 0 || o.Steer <= 0 || o.Steer > 1 {
		return invalid("opponent parameters")
	}
	if c.Scoring.FinishPoints < 0 || c.Scoring.PerRival < 0 {
		return invalid("scoring must not be negative")
	}
	return c.Difficulty.validate()
}
