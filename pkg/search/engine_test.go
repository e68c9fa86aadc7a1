package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

var ladderWords = []string{
	"fled", "fred", "tred", "bled", "tied", "tint", "tend", "tent", "teed", "feed", "xyzq",
}

func buildGraph(t testing.TB, words ...string) *wordgraph.Graph {
	t.Helper()
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "%d\t%s\n", i, w)
	}
	g, err := wordgraph.Build(context.Background(), strings.NewReader(b.String()), wordgraph.Options{
		Logger: log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func newTestEngine(t testing.TB, g *wordgraph.Graph, opts Options) *Engine {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return NewEngine(g, opts)
}

func TestFindPathLadder(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	res, err := e.FindPath(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if !res.Found() {
		t.Fatalf("status = %v, want found", res.Status)
	}
	if want := []int{0, 9, 8, 6, 7, 5}; !reflect.DeepEqual(res.Path, want) {
		t.Errorf("path = %v, want %v", res.Path, want)
	}
	if got := strings.Join(g.Words(res.Path), " "); got != "fled feed teed tend tent tint" {
		t.Errorf("words = %q", got)
	}
	if res.Expanded != 10 {
		t.Errorf("expanded = %d, want 10", res.Expanded)
	}
	if res.Discovered != 12 {
		t.Errorf("discovered = %d, want 12", res.Discovered)
	}

	snap := e.Snapshot()
	if want := []int{0, 1, 3, 9, 2, 8, 4, 6, 7}; !reflect.DeepEqual(snap.Visited, want) {
		t.Errorf("visit order = %v, want %v", snap.Visited, want)
	}
	if want := []int{0, 2, 9, 1, 10, 11, 3, 6, 7, 8, 5, 4}; !reflect.DeepEqual(snap.Discovered, want) {
		t.Errorf("discovery order = %v, want %v", snap.Discovered, want)
	}
	if snap.Current != 5 || snap.State(5) != Current {
		t.Errorf("current = %d (%v), want 5 (current)", snap.Current, snap.State(5))
	}
	if len(snap.Frontier) != 0 {
		t.Errorf("frontier = %v, want empty", snap.Frontier)
	}
	if snap.State(10) != Unvisited {
		t.Errorf("xyzq state = %v, want unvisited", snap.State(10))
	}
}

func TestFindPathDeterministic(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	first, err := e.FindPath(context.Background(), 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	firstSnap := e.Snapshot()
	for i := 0; i < 5; i++ {
		res, err := e.FindPath(context.Background(), 3, 5)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(res, first) {
			t.Fatalf("run %d: result %+v, want %+v", i, res, first)
		}
		snap := e.Snapshot()
		if !reflect.DeepEqual(snap.Visited, firstSnap.Visited) || !reflect.DeepEqual(snap.Discovered, firstSnap.Discovered) {
			t.Fatalf("run %d: traversal order changed", i)
		}
	}
}

func TestFindPathExhausted(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	res, err := e.FindPath(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if res.Status != StatusExhausted || res.Found() {
		t.Fatalf("status = %v, want exhausted", res.Status)
	}
	if res.Path != nil {
		t.Errorf("path = %v, want nil", res.Path)
	}
	if res.Expanded != 10 {
		t.Errorf("expanded = %d, want 10", res.Expanded)
	}

	snap := e.Snapshot()
	if snap.HasCurrent() {
		t.Errorf("current = %d, want none", snap.Current)
	}
	if len(snap.Visited) != 10 {
		t.Errorf("visited %d vertices, want 10", len(snap.Visited))
	}
}

func TestFindPathSmallVocabulary(t *testing.T) {
	g := buildGraph(t, "abc", "abd", "xyz")
	e := newTestEngine(t, g, Options{})

	if g.EdgeCount() != 1 {
		t.Fatalf("edges = %d, want 1", g.EdgeCount())
	}
	res, err := e.FindPath(context.Background(), 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusExhausted {
		t.Errorf("abc -> xyz status = %v, want exhausted", res.Status)
	}
	res, err = e.FindPath(context.Background(), 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Path, []int{0, 1}) {
		t.Errorf("abc -> abd path = %v, want [0 1]", res.Path)
	}
}

func TestFindPathSameVertex(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	for v := 0; v < g.Len(); v++ {
		res, err := e.FindPath(context.Background(), v, v)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Found() || !reflect.DeepEqual(res.Path, []int{v}) {
			t.Errorf("FindPath(%d, %d) = %+v, want [%d]", v, v, res, v)
		}
		if res.Expanded != 1 || res.Discovered != 0 {
			t.Errorf("FindPath(%d, %d) expanded %d, discovered %d; want 1, 0", v, v, res.Expanded, res.Discovered)
		}
	}
}

func TestFindPathInvalidIDs(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})
	before := e.Snapshot()

	tests := []struct {
		name        string
		start, goal int
	}{
		{"negative start", -1, 0},
		{"NotFound goal", 0, wordgraph.NotFound},
		{"start too large", g.Len(), 0},
		{"goal too large", 0, g.Len() + 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.FindPath(context.Background(), tt.start, tt.goal)
			if !werrors.Is(err, werrors.ErrCodePrecondition) {
				t.Errorf("error = %v, want PRECONDITION_FAILED", err)
			}
		})
	}

	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed by rejected calls:\nbefore %+v\nafter  %+v", before, after)
	}
}

// bfsDistances computes hop counts from src with a plain adjacency scan,
// independently of the engine and the graph's incidence lists.
func bfsDistances(words []string, src int) []int {
	dist := make([]int, len(words))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range words {
			if dist[v] < 0 && wordgraph.HammingDistance(words[u], words[v]) == 1 {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}

func randomWords(rng *rand.Rand, n, length int, alphabet string) []string {
	seen := make(map[string]bool)
	var out []string
	for len(out) < n {
		b := make([]byte, length)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		if w := string(b); !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func TestFindPathShortest(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 10; round++ {
		words := randomWords(rng, 40, 3, "abcde")
		g := buildGraph(t, words...)
		e := newTestEngine(t, g, Options{})

		for q := 0; q < 20; q++ {
			start, goal := rng.Intn(len(words)), rng.Intn(len(words))
			want := bfsDistances(words, start)[goal]

			res, err := e.FindPath(context.Background(), start, goal)
			if err != nil {
				t.Fatal(err)
			}
			if want < 0 {
				if res.Status != StatusExhausted {
					t.Errorf("%s -> %s: status %v, want exhausted", words[start], words[goal], res.Status)
				}
				continue
			}
			if !res.Found() {
				t.Errorf("%s -> %s: status %v, want found", words[start], words[goal], res.Status)
				continue
			}
			if got := len(res.Path) - 1; got != want {
				t.Errorf("%s -> %s: %d steps, want %d", words[start], words[goal], got, want)
			}
			if res.Path[0] != start || res.Path[len(res.Path)-1] != goal {
				t.Errorf("path %v does not run from %d to %d", res.Path, start, goal)
			}
			for i := 1; i < len(res.Path); i++ {
				a, b := words[res.Path[i-1]], words[res.Path[i]]
				if wordgraph.HammingDistance(a, b) != 1 {
					t.Errorf("path step %s -> %s is not a one-letter change", a, b)
				}
			}
		}
	}
}

func TestFindPathConcurrentReader(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := buildGraph(t, randomWords(rng, 150, 3, "abcdef")...)
	e := newTestEngine(t, g, Options{})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var prev Snapshot
		for {
			select {
			case <-done:
				return
			default:
			}

			snap := e.Snapshot()
			if snap.Generation < prev.Generation {
				t.Errorf("generation went backwards: %d after %d", snap.Generation, prev.Generation)
				return
			}
			queued := make(map[int]bool, len(snap.Frontier))
			for _, fe := range snap.Frontier {
				if fe.Path[len(fe.Path)-1] != fe.Vertex {
					t.Errorf("frontier entry %+v path does not end at its vertex", fe)
				}
				queued[fe.Vertex] = true
			}
			for _, v := range snap.Visited {
				if queued[v] {
					t.Errorf("vertex %d is both visited and queued", v)
					return
				}
			}
			if snap.Start == prev.Start && snap.Goal == prev.Goal && len(prev.Discovered) <= len(snap.Discovered) &&
				!reflect.DeepEqual(prev.Discovered, snap.Discovered[:len(prev.Discovered)]) {
				t.Errorf("discovered edges are not a prefix extension")
				return
			}
			prev = snap
		}
	}()

	for q := 0; q < 20; q++ {
		if _, err := e.FindPath(context.Background(), q, g.Len()-1-q); err != nil {
			t.Error(err)
		}
	}
	close(done)
	wg.Wait()
}

func TestFindPathDiscoveredMonotonic(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	var (
		mu      sync.Mutex
		lengths []int
	)
	ch, cancel := e.Subscribe(1024)
	go func() {
		for snap := range ch {
			mu.Lock()
			lengths = append(lengths, len(snap.Discovered))
			mu.Unlock()
		}
	}()

	if _, err := e.FindPath(context.Background(), 0, 10); err != nil {
		t.Fatal(err)
	}
	cancel()

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(lengths); i++ {
		if lengths[i] < lengths[i-1] {
			t.Fatalf("discovered shrank from %d to %d", lengths[i-1], lengths[i])
		}
	}
}

func TestFindPathCancelled(t *testing.T) {
	g := buildGraph(t, ladderWords...)

	t.Run("before start", func(t *testing.T) {
		e := newTestEngine(t, g, Options{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := e.FindPath(ctx, 0, 5)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
		if res.Status != StatusCancelled || e.Snapshot().Status != StatusCancelled {
			t.Errorf("status = %v, want cancelled", res.Status)
		}
		if res.Expanded != 0 {
			t.Errorf("expanded = %d, want 0", res.Expanded)
		}
	})

	t.Run("mid search", func(t *testing.T) {
		e := newTestEngine(t, g, Options{StepDelay: 20 * time.Millisecond})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		res, err := e.FindPath(ctx, 0, 5)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("error = %v, want context.DeadlineExceeded", err)
		}
		if res.Status != StatusCancelled {
			t.Errorf("status = %v, want cancelled", res.Status)
		}
		if res.Expanded == 0 || res.Expanded >= 10 {
			t.Errorf("expanded = %d, want a partial search", res.Expanded)
		}
		if e.Running() {
			t.Error("engine still reports running")
		}
	})
}

func TestFindPathBusy(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{StepDelay: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := e.FindPath(ctx, 0, 5)
		errc <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for e.Snapshot().Status != StatusRunning {
		if time.Now().After(deadline) {
			t.Fatal("search never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := e.FindPath(context.Background(), 1, 2); !werrors.Is(err, werrors.ErrCodePrecondition) {
		t.Errorf("concurrent FindPath error = %v, want PRECONDITION_FAILED", err)
	}
	if err := e.Reset(); !werrors.Is(err, werrors.ErrCodePrecondition) {
		t.Errorf("Reset during search error = %v, want PRECONDITION_FAILED", err)
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("first search error = %v, want context.Canceled", err)
	}
	if err := e.Reset(); err != nil {
		t.Errorf("Reset after search: %v", err)
	}
}

func TestFindPathPacing(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{EdgeDelay: time.Millisecond})

	began := time.Now()
	if _, err := e.FindPath(context.Background(), 0, 5); err != nil {
		t.Fatal(err)
	}
	// 23 incident edges are examined before tint is dequeued.
	if elapsed := time.Since(began); elapsed < 20*time.Millisecond {
		t.Errorf("search took %v, want at least 20ms of edge pacing", elapsed)
	}
}

func TestReset(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	if _, err := e.FindPath(context.Background(), 0, 5); err != nil {
		t.Fatal(err)
	}
	genBefore := e.Snapshot().Generation
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}

	snap := e.Snapshot()
	if snap.Status != StatusIdle {
		t.Errorf("status = %v, want idle", snap.Status)
	}
	if snap.HasCurrent() || len(snap.Visited) != 0 || len(snap.Frontier) != 0 || len(snap.Discovered) != 0 || snap.Path != nil {
		t.Errorf("state not cleared: %+v", snap)
	}
	for v, d := range snap.Display {
		if d != Unvisited {
			t.Errorf("vertex %d display = %v, want unvisited", v, d)
		}
	}
	if snap.Generation <= genBefore {
		t.Errorf("generation = %d, want > %d", snap.Generation, genBefore)
	}
}

func TestNeighbors(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	tests := []struct {
		v             int
		neighbors, id []int
	}{
		{0, []int{1, 3, 9}, []int{0, 2, 9}},
		{8, []int{2, 4, 6, 9}, []int{6, 7, 8, 11}},
		{5, []int{7}, []int{4}},
		{10, []int{}, []int{}},
		{-1, nil, nil},
		{11, nil, nil},
	}
	for _, tt := range tests {
		n, ids := e.Neighbors(tt.v)
		if !reflect.DeepEqual(n, tt.neighbors) || !reflect.DeepEqual(ids, tt.id) {
			t.Errorf("Neighbors(%d) = %v, %v; want %v, %v", tt.v, n, ids, tt.neighbors, tt.id)
		}
	}
	if e.Snapshot().Status != StatusIdle {
		t.Error("Neighbors changed engine state")
	}
}

func TestFindWordPath(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	tests := []struct {
		from, to string
		words    []string
		missing  string
		notFound bool
	}{
		{"fled", "tint", []string{"fled", "feed", "teed", "tend", "tent", "tint"}, "", false},
		{"bled", "fred", []string{"bled", "fled", "fred"}, "", false},
		{"fled", "xyzq", nil, "", true},
		{"zzzz", "tint", nil, "zzzz", true},
		{"fled", "nope", nil, "nope", true},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			res, err := e.FindWordPath(context.Background(), tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(res.Words, tt.words) {
				t.Errorf("words = %v, want %v", res.Words, tt.words)
			}
			if res.Missing != tt.missing {
				t.Errorf("missing = %q, want %q", res.Missing, tt.missing)
			}
			if res.NotFound() != tt.notFound {
				t.Errorf("NotFound() = %v, want %v", res.NotFound(), tt.notFound)
			}
		})
	}
}

func TestEmptyEngine(t *testing.T) {
	e := newTestEngine(t, nil, Options{})

	if _, err := e.FindPath(context.Background(), 0, 0); !werrors.Is(err, werrors.ErrCodePrecondition) {
		t.Errorf("error = %v, want PRECONDITION_FAILED", err)
	}
	res, err := e.FindWordPath(context.Background(), "a", "b")
	if err != nil || res.Missing != "a" {
		t.Errorf("FindWordPath = %+v, %v; want missing a", res, err)
	}
}
