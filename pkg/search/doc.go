// Package search runs breadth-first word-ladder searches over a
// [wordgraph.Graph] while exposing the traversal state to concurrent readers.
//
// # Engine
//
// An [Engine] owns the mutable search state: the visited set, the FIFO
// frontier, the discovered edges, the current vertex, a display state per
// vertex and the overall [Status]. [Engine.FindPath] resets that state and
// walks the graph from start to goal:
//
//	eng := search.NewEngine(g, search.Options{})
//	res, err := eng.FindPath(ctx, start, goal)
//	if err != nil {
//	    return err // PRECONDITION_FAILED or ctx.Err()
//	}
//	if res.Found() {
//	    fmt.Println(g.Words(res.Path))
//	}
//
// Neighbours are discovered in edge-list order and a vertex is queued only the
// first time it is seen, so the returned path is the first shortest path
// discovered and is identical across runs on the same input. An unreachable
// goal is reported as [StatusExhausted], not as an error.
//
// # Concurrency
//
// All state sits behind one sync.RWMutex. The search takes the write lock for
// each smallest step (dequeue and set current, record one edge, mark
// visited) and releases it between steps, so readers never wait for more
// than one step and always observe a prefix of completed mutations.
//
// Readers have three options:
//   - [Engine.Read] runs a callback under the read lock with a [View]
//   - [Engine.Snapshot] copies the state into an immutable [Snapshot]
//   - [Engine.Subscribe] delivers a [Snapshot] after every step, dropping
//     stale ones when the subscriber falls behind
//
// Drawing should happen outside the lock: take a snapshot, then render it.
//
// Only one search runs per engine at a time. A second FindPath or a Reset
// while a search is running fails with PRECONDITION_FAILED.
//
// # Pacing
//
// [Options.StepDelay] and [Options.EdgeDelay] slow the traversal down for
// live display. Delays are spent outside the lock and end early when the
// context is cancelled.
package search
