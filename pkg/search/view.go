package search

import "slices"

// View is a read-only window onto the engine state, valid only for the
// duration of the [Engine.Read] callback that received it. Slices passed to
// callbacks must not be retained or modified.
type View struct {
	s *state
}

func (v View) Status() Status     { return v.s.status }
func (v View) Generation() uint64 { return v.s.generation }
func (v View) Start() int         { return v.s.start }
func (v View) Goal() int          { return v.s.goal }
func (v View) Expanded() int      { return v.s.expanded }

// Current returns the vertex being expanded, if any.
func (v View) Current() (int, bool) {
	return v.s.current, v.s.current >= 0
}

// State returns the display state of vertex id. Out-of-range ids are
// reported as Unvisited.
func (v View) State(id int) DisplayState {
	if id < 0 || id >= len(v.s.display) {
		return Unvisited
	}
	return v.s.display[id]
}

// IsVisited reports whether vertex id has been fully expanded.
func (v View) IsVisited(id int) bool {
	return id >= 0 && id < len(v.s.visited) && v.s.visited[id]
}

func (v View) VisitedLen() int    { return len(v.s.visitOrder) }
func (v View) FrontierLen() int   { return len(v.s.frontier) - v.s.head }
func (v View) DiscoveredLen() int { return len(v.s.discovered) }

// EachVisited calls fn for every visited vertex in visit order.
func (v View) EachVisited(fn func(id int)) {
	for _, id := range v.s.visitOrder {
		fn(id)
	}
}

// EachFrontier calls fn for every queued entry, head first.
func (v View) EachFrontier(fn func(FrontierEntry)) {
	for _, fe := range v.s.frontier[v.s.head:] {
		fn(fe)
	}
}

// EachDiscovered calls fn for every discovered edge id in discovery order.
func (v View) EachDiscovered(fn func(edgeID int)) {
	for _, id := range v.s.discovered {
		fn(id)
	}
}

// Path returns the found path, or nil.
func (v View) Path() []int { return v.s.path }

// Read calls fn with a view of the current state while holding the read
// lock. fn must be short and must not call back into the engine's
// mutating methods; copy what you need and draw afterwards.
func (e *Engine) Read(fn func(View)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(View{s: &e.st})
}

// =============================================================================
// Snapshots
// =============================================================================

// Snapshot is an immutable copy of the engine state.
type Snapshot struct {
	Generation uint64          `json:"generation"`
	Status     Status          `json:"status"`
	Start      int             `json:"start"`
	Goal       int             `json:"goal"`
	Current    int             `json:"current"` // -1 when no vertex is being expanded
	Visited    []int           `json:"visited"` // visit order
	Frontier   []FrontierEntry `json:"frontier"`
	Discovered []int           `json:"discovered"` // edge ids in discovery order
	Display    []DisplayState  `json:"display"`    // indexed by vertex id
	Path       []int           `json:"path,omitempty"`
	Expanded   int             `json:"expanded"`
}

// Snapshot copies the current state under the read lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s := &e.st

	frontier := make([]FrontierEntry, 0, len(s.frontier)-s.head)
	for _, fe := range s.frontier[s.head:] {
		frontier = append(frontier, FrontierEntry{Vertex: fe.Vertex, Path: slices.Clone(fe.Path)})
	}
	return Snapshot{
		Generation: s.generation,
		Status:     s.status,
		Start:      s.start,
		Goal:       s.goal,
		Current:    s.current,
		Visited:    slices.Clone(s.visitOrder),
		Frontier:   frontier,
		Discovered: slices.Clone(s.discovered),
		Display:    slices.Clone(s.display),
		Path:       slices.Clone(s.path),
		Expanded:   s.expanded,
	}
}

// HasCurrent reports whether a vertex is being expanded.
func (s Snapshot) HasCurrent() bool { return s.Current >= 0 }

// State returns the display state of vertex id.
func (s Snapshot) State(id int) DisplayState {
	if id < 0 || id >= len(s.Display) {
		return Unvisited
	}
	return s.Display[id]
}

// Active returns the vertices a renderer should list: visited vertices in
// visit order, then queued vertices in queue order, then the current vertex,
// each at most once.
func (s Snapshot) Active() []int {
	out := make([]int, 0, len(s.Visited)+len(s.Frontier)+1)
	seen := make(map[int]bool, cap(out))
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range s.Visited {
		add(id)
	}
	for _, fe := range s.Frontier {
		add(fe.Vertex)
	}
	if s.HasCurrent() {
		add(s.Current)
	}
	return out
}

// Subscribe returns a channel that receives a [Snapshot] after every state
// change, and a function that ends the subscription and closes the channel.
// When the subscriber falls behind, the oldest buffered snapshot is dropped
// so the newest one is always delivered. buffer values below 1 mean 1.
func (e *Engine) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.subMu.Unlock()

	cancel := func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		if c, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publish sends the current state to every subscriber without blocking.
func (e *Engine) publish() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	if len(e.subs) == 0 {
		return
	}

	snap := e.Snapshot()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
