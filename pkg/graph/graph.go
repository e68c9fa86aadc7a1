package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a word graph to JSON bytes.
func MarshalGraph(g *wordgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a word graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *wordgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a word graph as JSON to an io.Writer.
func WriteGraph(g *wordgraph.Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded word graph.
func ReadGraphFile(path string) (*wordgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a word graph.
func ReadGraph(r io.Reader) (*wordgraph.Graph, error) {
	return readGraphFrom(r)
}

// UnmarshalGraph decodes JSON bytes into a word graph.
func UnmarshalGraph(data []byte) (*wordgraph.Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *wordgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromWordGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*wordgraph.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return ToWordGraph(data)
}
