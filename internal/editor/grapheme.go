// This file provides grapheme cluster helpers for the renderer.
//
// The buffer and cursor are rune-addressed: offsets, rows and columns all
// count runes. Display is a different unit twice over. A grapheme cluster
// may span several runes ("e" plus a combining accent is one cluster), and
// a cluster may occupy one or two terminal cells (ASCII is 1, CJK and
// emoji are 2). Truncating a line for the viewport must therefore walk
// clusters and display widths, never raw runes, or a wide character could
// be cut in half at the right edge.
package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeDisplayWidth returns the display width of a single grapheme
// cluster in terminal cells.
func GraphemeDisplayWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// StringDisplayWidth returns the total display width of a string in
// terminal cells.
func StringDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToDisplayWidth truncates a string to fit within the given
// display width without splitting grapheme clusters.
func TruncateToDisplayWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	var result strings.Builder
	currentWidth := 0

	iter := NewGraphemeIterator(s)
	for iter.Next() {
		clusterWidth := GraphemeDisplayWidth(iter.Cluster())
		if currentWidth+clusterWidth > maxWidth {
			break
		}
		result.WriteString(iter.Cluster())
		currentWidth += clusterWidth
	}

	return result.String()
}

// GraphemeIterator iterates over the grapheme clusters of a string.
// Create one with NewGraphemeIterator, then call Next in a loop.
type GraphemeIterator struct {
	original string
	rest     string
	state    int
	cluster  string
	bytePos  int
	index    int
	started  bool
}

// NewGraphemeIterator creates a new iterator over grapheme clusters in s.
func NewGraphemeIterator(s string) *GraphemeIterator {
	return &GraphemeIterator{
		original: s,
		rest:     s,
		state:    -1,
		index:    -1,
		started:  false,
	}
}

// Next advances the iterator to the next grapheme cluster.
// Returns false when there are no more grapheme clusters.
func (g *GraphemeIterator) Next() bool {
	if len(g.rest) == 0 {
		return false
	}

	if g.started {
		g.bytePos = len(g.original) - len(g.rest)
		g.index++
	} else {
		g.bytePos = 0
		g.index = 0
		g.started = true
	}

	cluster, rest, _, newState := uniseg.StepString(g.rest, g.state)
	g.cluster = cluster
	g.rest = rest
	g.state = newState

	return true
}

// Cluster returns the current grapheme cluster.
// Returns "" if Next has not been called or returned false.
func (g *GraphemeIterator) Cluster() string {
	return g.cluster
}

// BytePos returns the byte offset of the current cluster in the original
// string.
func (g *GraphemeIterator) BytePos() int {
	return g.bytePos
}

// Index returns the grapheme index of the current cluster (0-indexed).
// Returns -1 if Next has not been called.
func (g *GraphemeIterator) Index() int {
	return g.index
}
