package core

// Cue names a sound effect a game wants played.
type Cue uint8

const (
	CueNone Cue = iota
	CueShoot
	CueHit
	CueExplode
	CueCoin
	CueFlip
	CueCrash
	CueLevelUp
	CueMatch
	CueWin
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueShoot:
		return "shoot"
	case CueHit:
		return "hit"
	case CueExplode:
		return "explode"
	case CueCoin:
		return "coin"
	case CueFlip:
		return "flip"
	case CueCrash:
		return "crash"
	case CueLevelUp:
		return "level_up"
	case CueMatch:
		return "match"
	case CueWin:
		return "win"
	default:
		return "none"
	}
}

// CueSource is implemented by games that emit sound cues.
// The session drains it after every update.
type CueSource interface {
	DrainCues() []Cue
}

// CueQueue is an embeddable CueSource.
type CueQueue struct {
	cues []Cue
}

// Emit queues a cue for the current frame.
func (q *CueQueue) Emit(c Cue) {
	if c == CueNone {
		return
	}
	q.cues = append(q.cues, c)
}

// DrainCues returns the queued cues and empties the queue.
func (q *CueQueue) DrainCues() []Cue {
	if len(q.cues) == 0 {
		return nil
	}
	out := q.cues
	q.cues = nil
	return out
}
