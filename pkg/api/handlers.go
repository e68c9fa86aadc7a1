package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// PathResponse is the body of GET /path.
type PathResponse struct {
	Found       bool              `json:"found"`
	Words       []string          `json:"words,omitempty"`
	Exploration graph.Exploration `json:"exploration"`
}

// RunRequest is the body of POST /runs.
type RunRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RunResponse describes a background run.
type RunResponse struct {
	ID          string            `json:"id"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Created     time.Time         `json:"created"`
	Done        bool              `json:"done"`
	Words       []string          `json:"words,omitempty"`
	Error       string            `json:"error,omitempty"`
	Exploration graph.Exploration `json:"exploration"`
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.endpoints(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	engine := search.NewEngine(s.graph, search.Options{Logger: s.opts.Search.Logger})
	res, err := engine.FindPath(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PathResponse{
		Found:       res.Found(),
		Words:       s.graph.Words(res.Path),
		Exploration: graph.FromSnapshot(s.graph, engine.Snapshot()),
	})
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "decode run request"))
		return
	}
	if _, _, err := s.endpoints(req.From, req.To); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithCancel(s.runCtx)
	rn := &run{
		id:      uuid.New(),
		from:    req.From,
		to:      req.To,
		created: time.Now().UTC(),
		engine:  search.NewEngine(s.graph, s.opts.Search),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	if err := s.runs.add(rn); err != nil {
		cancel()
		writeError(w, err)
		return
	}

	go func() {
		defer cancel()
		res, err := rn.engine.FindWordPath(ctx, rn.from, rn.to)
		rn.finish(res, err)
		s.logger.Debug("run finished", "id", rn.id, "status", res.Status)
	}()

	s.logger.Info("run started", "id", rn.id, "from", rn.from, "to", rn.to)
	w.Header().Set("Location", "/runs/"+rn.id.String())
	writeJSON(w, http.StatusAccepted, s.describe(rn))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rn, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.describe(rn))
}

func (s *Server) handleCancelRun(w http.ResponseWriter, r *http.Request) {
	rn, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rn.cancel()
	select {
	case <-rn.done:
	case <-r.Context().Done():
		return
	}
	writeJSON(w, http.StatusOK, s.describe(rn))
}

// endpoints validates and resolves a from/to pair. Unknown words are
// NOT_FOUND; malformed ones INVALID_INPUT.
func (s *Server) endpoints(from, to string) (int, int, error) {
	for _, w := range []string{from, to} {
		if err := werrors.ValidateWord(w); err != nil {
			return 0, 0, err
		}
	}
	start := s.graph.IndexForWord(from)
	if start == wordgraph.NotFound {
		return 0, 0, werrors.New(werrors.ErrCodeNotFound, "word %q is not in the vocabulary", from)
	}
	goal := s.graph.IndexForWord(to)
	if goal == wordgraph.NotFound {
		return 0, 0, werrors.New(werrors.ErrCodeNotFound, "word %q is not in the vocabulary", to)
	}
	return start, goal, nil
}

func (s *Server) lookup(r *http.Request) (*run, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, werrors.New(werrors.ErrCodeInvalidInput, "invalid run id %q", raw)
	}
	rn, ok := s.runs.get(id)
	if !ok {
		return nil, werrors.New(werrors.ErrCodeNotFound, "run %s not found", id)
	}
	return rn, nil
}

func (s *Server) describe(rn *run) RunResponse {
	resp := RunResponse{
		ID:          rn.id.String(),
		From:        rn.from,
		To:          rn.to,
		Created:     rn.created,
		Exploration: graph.FromSnapshot(s.graph, rn.engine.Snapshot()),
	}
	res, done, err := rn.outcome()
	resp.Done = done
	resp.Words = res.Words
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
