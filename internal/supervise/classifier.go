package supervise

import "regexp"

// LineClass tags a server log line with its lifecycle meaning.
type LineClass int

const (
	// Unclassified lines carry no lifecycle meaning.
	Unclassified LineClass = iota
	// Ready means the server finished loading and accepts commands.
	Ready
	// ChunkIOStall and ThreadPoolStall mark known shutdown hangs where the
	// server waits on console input.
	ChunkIOStall
	ThreadPoolStall
)

var (
	readyPattern      = regexp.MustCompile(`Done \([0-9.,]+s\)! For help, type "help"`)
	chunkIOPattern    = regexp.MustCompile(`Flushing Chunk IO`)
	threadPoolPattern = regexp.MustCompile(`Closing Thread Pool`)
)

// Classify tags one stdout line. All pattern knowledge lives here; the state
// machine consumes the tag and never re-matches text.
func Classify(line string) LineClass {
	switch {
	case readyPattern.MatchString(line):
		return Ready
	case chunkIOPattern.MatchString(line):
		return ChunkIOStall
	case threadPoolPattern.MatchString(line):
		return ThreadPoolStall
	}
	return Unclassified
}

// Event is one classified log line, delivered in order on a finite,
// non-restartable stream that closes when the process exits.
type Event struct {
	Line  string
	Class LineClass
}
