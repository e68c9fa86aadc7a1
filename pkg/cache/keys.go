package cache

// EdgesFormat versions the encoding of cached edge lists. Bump it whenever
// the wire format changes so stale entries are never decoded.
const EdgesFormat = 1

// Keyer derives cache keys.
type Keyer interface {
	// EdgesKey returns the key of the edge list computed from a word file
	// whose content hash is wordsHash.
	EdgesKey(wordsHash string, opts EdgesKeyOpts) string
}

// EdgesKeyOpts holds the inputs besides the word file that affect a cached
// edge list.
type EdgesKeyOpts struct {
	Format int `json:"format"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// EdgesKey returns "edges:<sha256>" over the word hash and options.
func (DefaultKeyer) EdgesKey(wordsHash string, opts EdgesKeyOpts) string {
	if opts.Format == 0 {
		opts.Format = EdgesFormat
	}
	return hashKey("edges", wordsHash, opts)
}

var _ Keyer = DefaultKeyer{}
