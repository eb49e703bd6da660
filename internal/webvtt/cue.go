package webvtt

import (
	"fmt"
	"strings"
)

// Cue is one WebVTt cue: an id, a half-open time interval, typed
// settings, a parsed DOM forest and the line count it occupies.
type Cue struct {
	ID    string
	HasID bool

	Start int64
	Stop  int64

	Settings CueSettings

	Nodes []*DomNode
	Lines int
}

// NewCue returns an empty cue with default settings over [start, stop).
func NewCue(start, stop int64) *Cue {
	return &Cue{
		Start:    start,
		Stop:     stop,
		Settings: NewCueSettings(),
	}
}

// Reduce drops the cue's current first line of text, returning the same
// cue with Lines decremented, or nil if the cue is now empty and should
// be discarded.
func Reduce(cue *Cue) *Cue {
	if cue.Lines <= 1 {
		return nil
	}

	found := false
	walkTextNodes(cue.Nodes, func(n *DomNode) bool {
		if idx := strings.IndexByte(n.Text, '\n'); idx >= 0 {
			n.Text = n.Text[idx+1:]
			found = true
			return false
		}
		n.Text = ""
		return true
	})

	if !found {
		return nil
	}
	cue.Lines--
	return cue
}

// walkTextNodes visits every text leaf of nodes in document order,
// stopping early when visit returns false.
func walkTextNodes(nodes []*DomNode, visit func(*DomNode) bool) bool {
	for _, n := range nodes {
		if n.IsText() {
			if !visit(n) {
				return false
			}
		} else if !walkTextNodes(n.Children, visit) {
			return false
		}
	}
	return true
}

// DebugString renders the cue's DOM forest as an indented tree, for
// -loglevel debug diagnostics.
func (c *Cue) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cue[%d,%d) lines=%d", c.Start, c.Stop, c.Lines)
	for _, n := range c.Nodes {
		debugNode(&b, n, 1)
	}
	return b.String()
}

func debugNode(b *strings.Builder, n *DomNode, depth int) {
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("  ", depth))
	if n.IsText() {
		fmt.Fprintf(b, "text %q", n.Text)
		return
	}
	fmt.Fprintf(b, "<%s attrs=%q>", n.Tag, n.Attrs)
	for _, c := range n.Children {
		debugNode(b, c, depth+1)
	}
}
