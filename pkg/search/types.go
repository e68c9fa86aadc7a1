package search

import "fmt"

// DisplayState is how a renderer should draw a vertex.
type DisplayState int

const (
	Unvisited DisplayState = iota
	Frontier
	Current
	Visited
)

var displayNames = [...]string{"unvisited", "frontier", "current", "visited"}

func (d DisplayState) String() string {
	if d < 0 || int(d) >= len(displayNames) {
		return fmt.Sprintf("DisplayState(%d)", int(d))
	}
	return displayNames[d]
}

// MarshalText encodes the state by name.
func (d DisplayState) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Status is the lifecycle state of an engine.
//
//	Idle -> Running -> Found | Exhausted | Cancelled
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFound
	StatusExhausted
	StatusCancelled
)

var statusNames = [...]string{"idle", "running", "found", "exhausted", "cancelled"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether s ends a search.
func (s Status) Terminal() bool {
	return s == StatusFound || s == StatusExhausted || s == StatusCancelled
}

// FrontierEntry is a queued vertex together with the path that reached it.
// Path runs from the start vertex to Vertex inclusive.
type FrontierEntry struct {
	Vertex int   `json:"vertex"`
	Path   []int `json:"path"`
}

// Result summarizes a finished search.
type Result struct {
	Status     Status `json:"status"`
	Path       []int  `json:"path,omitempty"` // start..goal, set only when found
	Expanded   int    `json:"expanded"`       // vertices dequeued
	Discovered int    `json:"discovered"`     // distinct edges examined
}

// Found reports whether a path was found.
func (r Result) Found() bool { return r.Status == StatusFound }

// WordResult is a [Result] expressed in words.
type WordResult struct {
	Result
	Words []string `json:"words,omitempty"`

	// Missing names the first endpoint absent from the vocabulary. When it
	// is set no search ran and Status is StatusIdle.
	Missing string `json:"missing,omitempty"`
}

// NotFound reports whether no ladder exists, either because an endpoint is
// not a known word or because the goal is unreachable.
func (r WordResult) NotFound() bool {
	return r.Missing != "" || r.Status == StatusExhausted
}
