package search

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/observability"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// Options configures an [Engine].
type Options struct {
	// StepDelay is slept after each vertex is dequeued. Zero disables it.
	StepDelay time.Duration

	// EdgeDelay is slept after each incident edge is examined. Zero
	// disables it.
	EdgeDelay time.Duration

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Engine runs breadth-first searches over one graph. The graph is read-only;
// the traversal state is guarded by the engine's lock and can be observed
// through [Engine.Read], [Engine.Snapshot] and [Engine.Subscribe].
type Engine struct {
	graph  *wordgraph.Graph
	opts   Options
	logger *log.Logger

	running atomic.Bool

	mu sync.RWMutex
	st state

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

type state struct {
	status     Status
	start      int
	goal       int
	current    int // wordgraph.NotFound when unset
	visited    []bool
	pending    []bool // queued and not yet dequeued
	visitOrder []int
	frontier   []FrontierEntry
	head       int // frontier[head:] is the live queue
	seenEdge   []bool
	discovered []int // edge ids in discovery order
	display    []DisplayState
	path       []int
	expanded   int
	generation uint64
}

// NewEngine returns an idle engine over g. A nil graph is treated as empty.
func NewEngine(g *wordgraph.Graph, opts Options) *Engine {
	if g == nil {
		g = &wordgraph.Graph{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	e := &Engine{
		graph:  g,
		opts:   opts,
		logger: opts.Logger,
		subs:   make(map[int]chan Snapshot),
	}
	e.st.clear(g.Len())
	return e
}

// Graph returns the graph the engine searches.
func (e *Engine) Graph() *wordgraph.Graph { return e.graph }

// Running reports whether a search is in progress.
func (e *Engine) Running() bool { return e.running.Load() }

func (s *state) clear(n int) {
	gen := s.generation
	*s = state{
		status:     StatusIdle,
		start:      wordgraph.NotFound,
		goal:       wordgraph.NotFound,
		current:    wordgraph.NotFound,
		visited:    make([]bool, n),
		pending:    make([]bool, n),
		seenEdge:   nil,
		display:    make([]DisplayState, n),
		generation: gen + 1,
	}
}

// =============================================================================
// Search
// =============================================================================

// FindPath searches for a shortest path from start to goal.
//
// start and goal must be vertex ids of the engine's graph; otherwise
// FindPath fails with PRECONDITION_FAILED without touching the state. It
// also fails with PRECONDITION_FAILED while another search is running.
//
// An unreachable goal yields a result with [StatusExhausted] and a nil
// error. If ctx is cancelled the search stops at the next step, the status
// becomes [StatusCancelled] and ctx.Err() is returned.
func (e *Engine) FindPath(ctx context.Context, start, goal int) (Result, error) {
	n := e.graph.Len()
	if !e.graph.Valid(start) {
		return Result{}, werrors.Precondition("start vertex %d is not in [0, %d)", start, n)
	}
	if !e.graph.Valid(goal) {
		return Result{}, werrors.Precondition("goal vertex %d is not in [0, %d)", goal, n)
	}
	if !e.running.CompareAndSwap(false, true) {
		return Result{}, werrors.Precondition("a search is already running")
	}
	defer e.running.Store(false)

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, start, goal)
	e.logger.Debug("search started", "from", e.graph.Word(start), "to", e.graph.Word(goal))

	began := time.Now()
	res, err := e.run(ctx, start, goal)
	elapsed := time.Since(began)

	hooks.OnSearchComplete(ctx, res.Status.String(), res.Expanded, len(res.Path), elapsed, err)
	e.logger.Debug("search finished",
		"status", res.Status,
		"expanded", res.Expanded,
		"discovered", res.Discovered,
		"path", len(res.Path),
		"elapsed", elapsed.Round(time.Microsecond))
	return res, err
}

// FindWordPath is FindPath addressed by word. If either word is not in the
// graph, no search runs and the result names the missing word.
func (e *Engine) FindWordPath(ctx context.Context, from, to string) (WordResult, error) {
	start := e.graph.IndexForWord(from)
	if start == wordgraph.NotFound {
		return WordResult{Missing: from}, nil
	}
	goal := e.graph.IndexForWord(to)
	if goal == wordgraph.NotFound {
		return WordResult{Missing: to}, nil
	}

	res, err := e.FindPath(ctx, start, goal)
	out := WordResult{Result: res}
	if res.Found() {
		out.Words = e.graph.Words(res.Path)
	}
	return out, err
}

func (e *Engine) run(ctx context.Context, start, goal int) (Result, error) {
	e.begin(start, goal)
	e.publish()

	for {
		if err := ctx.Err(); err != nil {
			return e.cancel(err)
		}

		entry, ok := e.dequeue()
		e.publish()
		if !ok {
			return e.result(), nil
		}
		if entry.Vertex == goal {
			e.found(entry.Path)
			e.publish()
			return e.result(), nil
		}
		if err := sleep(ctx, e.opts.StepDelay); err != nil {
			return e.cancel(err)
		}

		for _, id := range e.graph.Incident(entry.Vertex) {
			e.discover(id, e.graph.Edge(id).Other(entry.Vertex), entry.Path)
			e.publish()
			if err := sleep(ctx, e.opts.EdgeDelay); err != nil {
				return e.cancel(err)
			}
		}

		e.markVisited(entry.Vertex)
		e.publish()
	}
}

// begin clears the state and queues the start vertex in one critical section.
func (e *Engine) begin(start, goal int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := &e.st
	s.clear(e.graph.Len())
	s.seenEdge = make([]bool, e.graph.EdgeCount())
	s.status = StatusRunning
	s.start, s.goal = start, goal
	s.frontier = append(s.frontier, FrontierEntry{Vertex: start, Path: []int{start}})
	s.pending[start] = true
	s.display[start] = Frontier
}

// dequeue pops the next unvisited frontier entry and makes it current. On an
// empty frontier it marks the search exhausted and returns false.
func (e *Engine) dequeue() (FrontierEntry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := &e.st
	s.generation++

	for s.head < len(s.frontier) {
		entry := s.frontier[s.head]
		s.frontier[s.head] = FrontierEntry{}
		s.head++
		s.pending[entry.Vertex] = false
		if s.visited[entry.Vertex] {
			continue
		}
		s.current = entry.Vertex
		s.display[entry.Vertex] = Current
		s.expanded++
		return entry, true
	}

	s.status = StatusExhausted
	s.current = wordgraph.NotFound
	return FrontierEntry{}, false
}

// discover records one incident edge of the vertex reached by path and
// queues its other endpoint n if n was never seen before.
func (e *Engine) discover(edge, n int, path []int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := &e.st
	s.generation++

	if !s.seenEdge[edge] {
		s.seenEdge[edge] = true
		s.discovered = append(s.discovered, edge)
	}
	if s.visited[n] || s.pending[n] || n == s.current {
		return
	}
	next := make([]int, len(path)+1)
	copy(next, path)
	next[len(path)] = n
	s.frontier = append(s.frontier, FrontierEntry{Vertex: n, Path: next})
	s.pending[n] = true
	s.display[n] = Frontier
}

func (e *Engine) markVisited(v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := &e.st
	s.generation++
	s.visited[v] = true
	s.visitOrder = append(s.visitOrder, v)
	s.display[v] = Visited
}

func (e *Engine) found(path []int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := &e.st
	s.generation++
	s.status = StatusFound
	s.path = slices.Clone(path)
}

func (e *Engine) cancel(err error) (Result, error) {
	e.mu.Lock()
	e.st.generation++
	e.st.status = StatusCancelled
	e.mu.Unlock()
	e.publish()
	return e.result(), err
}

func (e *Engine) result() Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Result{
		Status:     e.st.status,
		Path:       slices.Clone(e.st.path),
		Expanded:   e.st.expanded,
		Discovered: len(e.st.discovered),
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// =============================================================================
// Queries
// =============================================================================

// Reset returns the engine to [StatusIdle], clearing every state field in
// one critical section. It fails with PRECONDITION_FAILED while a search is
// running.
func (e *Engine) Reset() error {
	if !e.running.CompareAndSwap(false, true) {
		return werrors.Precondition("cannot reset while a search is running")
	}
	defer e.running.Store(false)

	e.mu.Lock()
	e.st.clear(e.graph.Len())
	e.mu.Unlock()
	e.publish()
	return nil
}

// Neighbors returns the vertices adjacent to v and the ids of the edges
// leading to them, both in edge-list order. It returns nil slices for an
// invalid v. Neighbors does not touch the search state.
func (e *Engine) Neighbors(v int) (neighbors, edgeIDs []int) {
	if !e.graph.Valid(v) {
		return nil, nil
	}
	incident := e.graph.Incident(v)
	neighbors = make([]int, len(incident))
	edgeIDs = make([]int, len(incident))
	for i, id := range incident {
		neighbors[i] = e.graph.Edge(id).Other(v)
		edgeIDs[i] = id
	}
	return neighbors, edgeIDs
}
