package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/search"
)

// run is one background search and the engine it mutates.
type run struct {
	id      uuid.UUID
	from    string
	to      string
	created time.Time
	engine  *search.Engine
	cancel  context.CancelFunc
	done    chan struct{}

	mu       sync.Mutex
	finished time.Time
	result   search.WordResult
	err      error
}

func (r *run) finish(res search.WordResult, err error) {
	r.mu.Lock()
	r.finished = time.Now()
	r.result = res
	r.err = err
	r.mu.Unlock()
	close(r.done)
}

// outcome returns the result and error once the run has finished.
func (r *run) outcome() (res search.WordResult, done bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, !r.finished.IsZero(), r.err
}

func (r *run) finishedBefore(t time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.finished.IsZero() && r.finished.Before(t)
}

func (r *run) isDone() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// registry holds runs in creation order. Finished runs expire after ttl and
// are evicted oldest first once max runs are held; running ones never are.
type registry struct {
	mu    sync.Mutex
	runs  map[uuid.UUID]*run
	order []uuid.UUID
	max   int
	ttl   time.Duration
	now   func() time.Time
}

func newRegistry(max int, ttl time.Duration) *registry {
	return &registry{
		runs: make(map[uuid.UUID]*run),
		max:  max,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (g *registry) add(r *run) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pruneLocked(1)
	if len(g.runs) >= g.max {
		return werrors.Precondition("too many active runs (max %d)", g.max)
	}
	g.runs[r.id] = r
	g.order = append(g.order, r.id)
	return nil
}

func (g *registry) get(id uuid.UUID) (*run, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pruneLocked(0)
	r, ok := g.runs[id]
	return r, ok
}

func (g *registry) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.runs)
}

// pruneLocked drops expired runs, then finished ones until reserve slots
// are free.
func (g *registry) pruneLocked(reserve int) {
	cutoff := g.now().Add(-g.ttl)
	over := len(g.runs) - g.max + reserve

	kept := g.order[:0]
	for _, id := range g.order {
		r := g.runs[id]
		switch {
		case r.finishedBefore(cutoff):
			delete(g.runs, id)
			over--
		case over > 0 && r.isDone():
			delete(g.runs, id)
			over--
		default:
			kept = append(kept, id)
		}
	}
	g.order = kept
}
