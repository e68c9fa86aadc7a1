package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordladder/pkg/cache"
	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/observability"
	"github.com/matzehuels/wordladder/pkg/search"
)

const ladder = "0\tfled\n1\tfred\n2\ttred\n3\tbled\n4\ttied\n5\ttint\n6\ttend\n7\ttent\n8\tteed\n9\tfeed\n10\txyzq\n"

func writeWords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(io.Discard))
}

type recordingHooks struct {
	observability.NoopCacheHooks
	observability.NoopBuildHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.record("hit")
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.record("miss")
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.record("set")
}

func (h *recordingHooks) OnBuildStart(context.Context, int) {
	h.record("build")
}

func (h *recordingHooks) take() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.events
	h.events = nil
	return out
}

func TestLoadGraphCaches(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetBuildHooks(hooks)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, fc)
	opts := Options{WordFile: writeWords(t, ladder), Workers: 2}
	ctx := context.Background()

	g1, hit, err := r.LoadGraphWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first load should miss")
	}
	if got := hooks.take(); !reflect.DeepEqual(got, []string{"miss", "build", "set"}) {
		t.Errorf("first load events = %v", got)
	}

	g2, hit, err := r.LoadGraphWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second load should hit")
	}
	if got := hooks.take(); !reflect.DeepEqual(got, []string{"hit"}) {
		t.Errorf("second load events = %v", got)
	}
	if !reflect.DeepEqual(g1.Edges(), g2.Edges()) || !reflect.DeepEqual(g1.Vertices(), g2.Vertices()) {
		t.Error("cached graph differs from built graph")
	}

	opts.Refresh = true
	if _, hit, _ := r.LoadGraphWithCacheInfo(ctx, opts); hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestLoadGraphCorruptCacheEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, fc)
	path := writeWords(t, ladder)
	ctx := context.Background()

	key := r.Keyer.EdgesKey(cache.Hash([]byte(ladder)), cache.EdgesKeyOpts{})
	if err := fc.Set(ctx, key, []byte(`{"nodes":[{"id":5,"word":"x"}]}`), 0); err != nil {
		t.Fatal(err)
	}

	g, hit, err := r.LoadGraphWithCacheInfo(ctx, Options{WordFile: path})
	if err != nil {
		t.Fatal(err)
	}
	if hit || g.Len() != 11 {
		t.Errorf("corrupt entry should be rebuilt: hit %v, %d words", hit, g.Len())
	}
	data, _, _ := fc.Get(ctx, key)
	if _, err := graph.UnmarshalGraph(data); err != nil {
		t.Errorf("corrupt entry was not overwritten: %v", err)
	}
}

func TestLoadGraphErrors(t *testing.T) {
	r := quietRunner(t, nil)
	ctx := context.Background()

	_, err := r.LoadGraph(ctx, Options{WordFile: filepath.Join(t.TempDir(), "missing.txt")})
	if !werrors.Is(err, werrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	_, err = r.LoadGraph(ctx, Options{WordFile: writeWords(t, "0\tab\n1\tabc\n")})
	if !werrors.Is(err, werrors.ErrCodePrecondition) {
		t.Errorf("mixed lengths error = %v, want PRECONDITION_FAILED", err)
	}

	_, err = r.LoadGraph(ctx, Options{WordFile: writeWords(t, "0\tab\nbroken\n")})
	if !werrors.Is(err, werrors.ErrCodeMalformedInput) {
		t.Errorf("malformed line error = %v, want MALFORMED_INPUT", err)
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{
		WordFile: writeWords(t, ladder),
		From:     "fled",
		To:       "tint",
		Formats:  []string{FormatDOT, FormatJSON, FormatGraph},
	})
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"fled", "feed", "teed", "tend", "tent", "tint"}; !reflect.DeepEqual(res.Search.Words, want) {
		t.Errorf("words = %v, want %v", res.Search.Words, want)
	}
	if res.Snapshot.Status != search.StatusFound {
		t.Errorf("snapshot status = %v", res.Snapshot.Status)
	}
	if res.Stats.WordCount != 11 || res.Stats.EdgeCount != 12 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.WordsHash) != 64 {
		t.Errorf("WordsHash = %q", res.WordsHash)
	}

	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "graph G {") {
		t.Errorf("dot artifact = %.40s", res.Artifacts[FormatDOT])
	}
	var exp graph.Exploration
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &exp); err != nil {
		t.Fatal(err)
	}
	if exp.Status != "found" || len(exp.Path) != 6 {
		t.Errorf("exploration = %+v", exp)
	}
	if _, err := graph.UnmarshalGraph(res.Artifacts[FormatGraph]); err != nil {
		t.Errorf("graph artifact: %v", err)
	}
}

func TestExecuteNotFound(t *testing.T) {
	r := quietRunner(t, nil)
	path := writeWords(t, ladder)

	tests := []struct {
		name, from, to string
		missing        string
	}{
		{"Unreachable", "fled", "xyzq", ""},
		{"UnknownWord", "fled", "zzzz", "zzzz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Execute(context.Background(), Options{
				WordFile: path, From: tt.from, To: tt.to, Formats: []string{FormatJSON},
			})
			if err != nil {
				t.Fatal(err)
			}
			if !res.Search.NotFound() || res.Search.Missing != tt.missing {
				t.Errorf("result = %+v", res.Search)
			}
		})
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := quietRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{WordFile: "w.txt", From: "a", To: "b", Formats: []string{"pdf"}})
	if !werrors.Is(err, werrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
