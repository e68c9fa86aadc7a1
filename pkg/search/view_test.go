package search

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

func TestSnapshotIsCopy(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})
	if _, err := e.FindPath(context.Background(), 0, 10); err != nil {
		t.Fatal(err)
	}

	snap := e.Snapshot()
	snap.Visited[0] = 99
	snap.Display[0] = Unvisited
	snap.Discovered[0] = 99

	again := e.Snapshot()
	if again.Visited[0] != 0 || again.Display[0] != Visited || again.Discovered[0] != 0 {
		t.Error("mutating a snapshot changed engine state")
	}
}

func TestSnapshotActive(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want []int
	}{
		{"idle", Snapshot{Current: -1}, []int{}},
		{
			"running",
			Snapshot{
				Current:  1,
				Visited:  []int{0},
				Frontier: []FrontierEntry{{Vertex: 3}, {Vertex: 9}},
			},
			[]int{0, 3, 9, 1},
		},
		{
			"current already visited",
			Snapshot{
				Current:  1,
				Visited:  []int{0, 1},
				Frontier: []FrontierEntry{{Vertex: 3}},
			},
			[]int{0, 1, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Active(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})
	if _, err := e.FindPath(context.Background(), 0, 5); err != nil {
		t.Fatal(err)
	}

	var (
		visited, discovered []int
		current             int
		ok                  bool
	)
	e.Read(func(v View) {
		if v.Status() != StatusFound {
			t.Errorf("status = %v, want found", v.Status())
		}
		current, ok = v.Current()
		v.EachVisited(func(id int) { visited = append(visited, id) })
		v.EachDiscovered(func(id int) { discovered = append(discovered, id) })
		if v.FrontierLen() != 0 {
			t.Errorf("frontier length = %d, want 0", v.FrontierLen())
		}
		if !v.IsVisited(9) || v.IsVisited(5) || v.IsVisited(-3) {
			t.Error("IsVisited reports the wrong vertices")
		}
		if v.State(100) != Unvisited {
			t.Error("out-of-range state should be unvisited")
		}
	})

	if !ok || current != 5 {
		t.Errorf("current = %d, %v; want 5, true", current, ok)
	}
	snap := e.Snapshot()
	if !reflect.DeepEqual(visited, snap.Visited) || !reflect.DeepEqual(discovered, snap.Discovered) {
		t.Error("view and snapshot disagree")
	}
}

func TestSubscribe(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	ch, cancel := e.Subscribe(256)
	if _, err := e.FindPath(context.Background(), 0, 5); err != nil {
		t.Fatal(err)
	}
	cancel()
	cancel() // idempotent

	var snaps []Snapshot
	for s := range ch {
		snaps = append(snaps, s)
	}
	if len(snaps) < 2 {
		t.Fatalf("received %d snapshots, want one per step", len(snaps))
	}
	if snaps[0].Status != StatusRunning || len(snaps[0].Frontier) != 1 {
		t.Errorf("first snapshot = %+v, want the queued start vertex", snaps[0])
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Generation <= snaps[i-1].Generation {
			t.Fatalf("generation %d after %d", snaps[i].Generation, snaps[i-1].Generation)
		}
	}
	if last := snaps[len(snaps)-1]; last.Status != StatusFound {
		t.Errorf("last snapshot status = %v, want found", last.Status)
	}
}

func TestSubscribeNewestWins(t *testing.T) {
	g := buildGraph(t, ladderWords...)
	e := newTestEngine(t, g, Options{})

	ch, cancel := e.Subscribe(0)
	defer cancel()
	if _, err := e.FindPath(context.Background(), 0, 10); err != nil {
		t.Fatal(err)
	}

	snap := <-ch
	if snap.Status != StatusExhausted {
		t.Errorf("buffered snapshot status = %v, want the final exhausted state", snap.Status)
	}
	select {
	case s := <-ch:
		t.Errorf("unexpected extra snapshot %+v", s)
	default:
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := buildGraph(t, "abc", "abd")
	e := newTestEngine(t, g, Options{})
	if _, err := e.FindPath(context.Background(), 0, 1); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Status  string   `json:"status"`
		Display []string `json:"display"`
		Path    []int    `json:"path"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Status != "found" {
		t.Errorf("status = %q, want found", decoded.Status)
	}
	if want := []string{"visited", "current"}; !reflect.DeepEqual(decoded.Display, want) {
		t.Errorf("display = %v, want %v", decoded.Display, want)
	}
	if !reflect.DeepEqual(decoded.Path, []int{0, 1}) {
		t.Errorf("path = %v, want [0 1]", decoded.Path)
	}
}

func TestStatusStrings(t *testing.T) {
	if StatusCancelled.String() != "cancelled" || Status(42).String() != "Status(42)" {
		t.Error("unexpected Status names")
	}
	if Frontier.String() != "frontier" || DisplayState(-1).String() != "DisplayState(-1)" {
		t.Error("unexpected DisplayState names")
	}
	if !StatusExhausted.Terminal() || StatusRunning.Terminal() {
		t.Error("Terminal() misclassifies statuses")
	}
}
