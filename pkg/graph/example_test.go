package graph_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

func ExampleWriteGraph() {
	g, _ := wordgraph.Build(context.Background(),
		strings.NewReader("0\tcat\n1\tcot\n"),
		wordgraph.Options{Logger: log.New(io.Discard)})

	_ = graph.WriteGraph(g, os.Stdout)
	// Output:
	// {
	//   "word_length": 3,
	//   "nodes": [
	//     {
	//       "id": 0,
	//       "word": "cat"
	//     },
	//     {
	//       "id": 1,
	//       "word": "cot"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "a": 1,
	//       "b": 0
	//     }
	//   ]
	// }
}

func ExampleUnmarshalGraph() {
	g, err := graph.UnmarshalGraph([]byte(`{
		"nodes": [{"id": 0, "word": "pack"}, {"id": 1, "word": "pick"}],
		"edges": [{"a": 1, "b": 0}]
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(g.Len(), g.EdgeCount(), g.IndexForWord("pick"))
	// Output: 2 1 1
}
