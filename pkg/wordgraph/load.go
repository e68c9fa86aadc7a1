package wordgraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
)

// wordField is the zero-based tab-separated column holding the word.
const wordField = 1

// loadProgressEvery is the line interval between debug progress messages.
const loadProgressEvery = 100

// LoadVertices parses a word list into vertices, one per non-blank line, in
// input order. Each line is split on tabs and its second field is the word;
// the trailing line terminator is not part of the word.
//
// A non-blank line without a non-empty second field fails with a
// MALFORMED_INPUT error wrapping a [werrors.LineError]. Blank lines are
// skipped. Word lengths are not checked here; see [BuildEdges].
func LoadVertices(r io.Reader, opts Options) ([]Vertex, error) {
	opts.setDefaults()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var vertices []Vertex
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		word, err := parseLine(line, text)
		if err != nil {
			return nil, err
		}
		if len(vertices)%loadProgressEvery == 0 {
			opts.Logger.Debug("loading words", "count", len(vertices))
		}
		vertices = append(vertices, Vertex{Word: word})
	}
	if err := sc.Err(); err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeMalformedInput, err, "read word list after line %d", line)
	}

	opts.Logger.Debug("loaded words", "count", len(vertices))
	return vertices, nil
}

// LoadVerticesFile opens path and parses it with [LoadVertices].
func LoadVerticesFile(path string, opts Options) ([]Vertex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadVertices(f, opts)
}

func parseLine(line int, text string) (string, error) {
	fields := strings.Split(text, "\t")
	if len(fields) <= wordField || fields[wordField] == "" {
		return "", werrors.Wrap(werrors.ErrCodeMalformedInput,
			&werrors.LineError{Line: line, Text: text},
			"expected a word in tab-separated field %d", wordField+1)
	}
	return fields[wordField], nil
}
