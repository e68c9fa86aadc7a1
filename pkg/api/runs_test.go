package api

import (
	"testing"
	"time"

	"github.com/google/uuid"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/search"
)

func newRun(finished bool) *run {
	r := &run{id: uuid.New(), done: make(chan struct{}), cancel: func() {}}
	if finished {
		r.finish(search.WordResult{}, nil)
	}
	return r
}

func TestRegistryEvictsOldestFinished(t *testing.T) {
	g := newRegistry(2, time.Hour)

	first, second, third := newRun(true), newRun(true), newRun(false)
	for _, r := range []*run{first, second, third} {
		if err := g.add(r); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if _, ok := g.get(first.id); ok {
		t.Error("oldest finished run should have been evicted")
	}
	for _, r := range []*run{second, third} {
		if _, ok := g.get(r.id); !ok {
			t.Errorf("run %s missing", r.id)
		}
	}
}

func TestRegistryKeepsRunning(t *testing.T) {
	g := newRegistry(1, time.Hour)
	if err := g.add(newRun(false)); err != nil {
		t.Fatal(err)
	}
	err := g.add(newRun(false))
	if !werrors.Is(err, werrors.ErrCodePrecondition) {
		t.Errorf("add over capacity = %v, want PRECONDITION_FAILED", err)
	}
	if g.len() != 1 {
		t.Errorf("len = %d, want 1", g.len())
	}
}

func TestRegistryExpires(t *testing.T) {
	g := newRegistry(10, time.Minute)
	now := time.Now()
	g.now = func() time.Time { return now }

	done, running := newRun(true), newRun(false)
	_ = g.add(done)
	_ = g.add(running)

	now = now.Add(2 * time.Minute)
	if _, ok := g.get(done.id); ok {
		t.Error("finished run outlived its ttl")
	}
	if _, ok := g.get(running.id); !ok {
		t.Error("running run expired")
	}
}
