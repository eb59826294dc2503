package snake

// Phase names the snake's progress for snapshots.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
	PhaseWon      Phase = "won"
	PhasePaused   Phase = "paused"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	FoodEaten int
	SnakeLen  int
	Head      Point
	Dir       Direction
	Food      Point
	Interval  float64
	Phase     Phase
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.won:
		phase = PhaseWon
	case g.gameOver:
		phase = PhaseGameOver
	case g.paused:
		phase = PhasePaused
	}

	var head Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}
	return Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		FoodEaten: g.foodEaten,
		SnakeLen:  len(g.snake),
		Head:      head,
		Dir:       g.direction,
		Food:      g.food,
		Interval:  g.Interval(),
		Phase:     phase,
	}
}
