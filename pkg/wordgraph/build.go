package wordgraph

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
)

// progressSteps is how many progress reports a full edge build emits.
const progressSteps = 20

// Options configures graph construction.
type Options struct {
	// Logger receives load and edge-construction progress.
	// Defaults to log.Default().
	Logger *log.Logger

	// Workers bounds the number of rows compared concurrently by BuildEdges.
	// Values below 1 mean 1 (serial).
	Workers int

	// Progress, if set, is called after every row of the pairwise
	// comparison with the number of completed rows and the total.
	// Calls are serialized.
	Progress func(done, total int)
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
}

// BuildEdges compares every unordered pair of vertices and returns an edge
// for each pair whose words differ in exactly one position. Edges come out
// ordered by (A, B) with A > B, exactly as a serial double loop over i and
// j < i produces them.
//
// All words must have the same length; otherwise BuildEdges fails with a
// PRECONDITION_FAILED error before comparing anything. The comparison is
// O(n²) and always runs to completion unless ctx is cancelled.
func BuildEdges(ctx context.Context, vertices []Vertex, opts Options) ([]Edge, error) {
	opts.setDefaults()

	words, _, err := wordRunes(vertices)
	if err != nil {
		return nil, err
	}

	n := len(words)
	rows := make([][]int, n)
	tracker := newRowTracker(n, opts)

	opts.Logger.Info("constructing edges", "words", n, "workers", opts.Workers)

	if opts.Workers == 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows[i] = neighborsBelow(words, i)
			tracker.done()
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range n {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rows[i] = neighborsBelow(words, i)
				tracker.done()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, r := range rows {
		total += len(r)
	}
	edges := make([]Edge, 0, total)
	for i, r := range rows {
		for _, j := range r {
			edges = append(edges, Edge{A: i, B: j})
		}
	}

	opts.Logger.Info("constructed edges", "words", n, "edges", len(edges))
	return edges, nil
}

// neighborsBelow returns every j < i adjacent to word i, ascending.
func neighborsBelow(words [][]rune, i int) []int {
	var out []int
	for j := 0; j < i; j++ {
		if adjacent(words[i], words[j]) {
			out = append(out, j)
		}
	}
	return out
}

// wordRunes decodes every word and checks that all share one length, which
// it returns alongside the decoded words.
func wordRunes(vertices []Vertex) ([][]rune, int, error) {
	words := make([][]rune, len(vertices))
	length := 0
	for i, v := range vertices {
		words[i] = []rune(v.Word)
		if i == 0 {
			length = len(words[i])
			continue
		}
		if len(words[i]) != length {
			return nil, 0, werrors.Precondition("word %d %q has length %d, want %d (length of %q)",
				i, v.Word, len(words[i]), length, vertices[0].Word)
		}
	}
	return words, length, nil
}

// rowTracker reports edge-construction progress every 5% of rows.
type rowTracker struct {
	total int
	step  int

	mu       sync.Mutex
	count    int
	logger   *log.Logger
	progress func(done, total int)
}

func newRowTracker(total int, opts Options) *rowTracker {
	step := total / progressSteps
	if step < 1 {
		step = 1
	}
	return &rowTracker{
		total:    total,
		step:     step,
		logger:   opts.Logger,
		progress: opts.Progress,
	}
}

func (t *rowTracker) done() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count++
	if t.count%t.step == 0 && t.count != t.total {
		t.logger.Infof("%5.1f%% words processed", 100*float64(t.count)/float64(t.total))
	}
	if t.progress != nil {
		t.progress(t.count, t.total)
	}
}
