package flappy

import "fmt"

// BestScoreStore persists the best score. Implementations must be safe to
// call from the frame driver goroutine. SaveBest never lowers the stored
// value and returns the best after the save.
type BestScoreStore interface {
	LoadBest() (int, error)
	SaveBest(score int) (int, error)
}

// ScoreTracker keeps the current and best score and writes every new best
// through to its store.
type ScoreTracker struct {
	current int
	best    int
	newBest bool
	store   BestScoreStore // nil keeps the best score in memory only
}

// NewScoreTracker loads the best score once. On a load error the tracker is
// still usable with best at zero, and the error is returned for logging.
func NewScoreTracker(store BestScoreStore) (*ScoreTracker, error) {
	st := &ScoreTracker{store: store}
	if store == nil {
		return st, nil
	}
	best, err := store.LoadBest()
	if err != nil {
		return st, fmt.Errorf("flappy: load best score: %w", err)
	}
	if best > 0 {
		st.best = best
	}
	return st, nil
}

// AddPoints adds n to the current score. When the score passes the best, it
// is saved immediately. A store shared with other sessions may hold a higher
// best, which is adopted and does not count as a new best. The returned
// error only reports the save; in-memory state is already updated.
func (st *ScoreTracker) AddPoints(n int) error {
	if n <= 0 {
		return nil
	}
	st.current += n
	if st.current <= st.best {
		return nil
	}
	st.best = st.current
	st.newBest = true
	if st.store == nil {
		return nil
	}
	stored, err := st.store.SaveBest(st.current)
	if err != nil {
		return fmt.Errorf("flappy: save best score %d: %w", st.current, err)
	}
	if stored > st.current {
		st.best = stored
		st.newBest = false
	}
	return nil
}

// Reset zeroes the current score. The best score is kept.
func (st *ScoreTracker) Reset() {
	st.current = 0
	st.newBest = false
}

// Current returns the score of the current run.
func (st *ScoreTracker) Current() int { return st.current }

// Best returns the best score ever recorded.
func (st *ScoreTracker) Best() int { return st.best }

// IsNewBest reports whether the current run set a new best.
func (st *ScoreTracker) IsNewBest() bool { return st.newBest }
