package webvtt

import "strings"

// DomNode is a WebVTT cue-text node: either a text leaf or a tagged
// element with children. Exactly one of Text/Children is populated,
// per the text-XOR-children invariant.
type DomNode struct {
	Parent *DomNode

	Tag   string
	Attrs string

	Text string

	Children []*DomNode
}

// IsText reports whether n is a text leaf rather than an element.
func (n *DomNode) IsText() bool {
	return n.Tag == ""
}

// BuildDOM parses a raw cue payload into a forest of DomNodes, tolerating
// malformed tag nesting, and returns the forest alongside the cue's line
// count (1 + total newlines across all text produced, or 0 if the
// payload produced no node at all).
func BuildDOM(payload string) (roots []*DomNode, lines int) {
	var current *DomNode // nil means "append at top level"
	pos := 0
	totalNewlines := 0
	anyNode := false

	appendChild := func(node *DomNode) {
		node.Parent = current
		if current == nil {
			roots = append(roots, node)
		} else {
			current.Children = append(current.Children, node)
		}
		anyNode = true
	}

	appendText := func(text string) {
		if text == "" {
			return
		}
		appendChild(&DomNode{Text: text})
		totalNewlines += countNewLines(text)
	}

	for pos < len(payload) {
		tagStart, tagEnd, ok := findNextTag(payload, pos)
		if !ok {
			appendText(payload[pos:])
			break
		}

		if tagStart > pos {
			appendText(payload[pos:tagStart])
		}

		if isEndTagShape(payload, tagStart) {
			name, _, _ := splitTag(payload, tagStart, tagEnd)
			var ancestor *DomNode
			if current != nil {
				ancestor = findAncestorByTag(current.Parent, name)
			}
			if ancestor != nil {
				current = ancestor.Parent
			} else {
				current = nil
			}
		} else {
			name, attrs, hasAttrs := splitTag(payload, tagStart, tagEnd)
			node := &DomNode{Tag: name}
			if hasAttrs {
				node.Attrs = attrs
			}
			appendChild(node)
			current = node
		}

		pos = tagEnd + 1
	}

	if !anyNode {
		return roots, 0
	}
	return roots, 1 + totalNewlines
}

func findAncestorByTag(start *DomNode, tag string) *DomNode {
	for p := start; p != nil; p = p.Parent {
		if p.Tag == tag {
			return p
		}
	}
	return nil
}

// findNextTag locates the next "<...>" run at or after pos and reports
// whether it is a valid tag shape. A false result means the scan must
// stop: the remainder of payload from pos is plain text.
func findNextTag(payload string, pos int) (start, end int, ok bool) {
	idx := strings.IndexByte(payload[pos:], '<')
	if idx == -1 {
		return 0, 0, false
	}
	start = pos + idx
	idx2 := strings.IndexByte(payload[start+1:], '>')
	if idx2 == -1 {
		return 0, 0, false
	}
	end = start + 1 + idx2
	size := end - start + 1
	if size < 2 {
		return 0, 0, false
	}
	if size == 2 {
		// "<>" — no room for a tag name.
		return 0, 0, false
	}
	if size == 3 && isEndTagShape(payload, start) {
		// "</>" — end tag with no name.
		return 0, 0, false
	}
	return start, end, true
}

func isEndTagShape(payload string, start int) bool {
	return start+1 < len(payload) && payload[start+1] == '/'
}

// splitTag extracts the tag name and attrs substring from the tag
// content payload[start:end+1] (which includes the enclosing '<' '>').
func splitTag(payload string, start, end int) (name, attrs string, hasAttrs bool) {
	i := start + 1
	if isEndTagShape(payload, start) {
		i++
	}
	for i < end && isBlank(payload[i]) {
		i++
	}
	nameBegin := i
	for i < end && !isBlank(payload[i]) && !isPunct(payload[i]) && payload[i] != '>' && payload[i] != '/' {
		i++
	}
	name = payload[nameBegin:i]
	if i < end {
		attrs = payload[i:end]
		hasAttrs = true
	}
	return name, attrs, hasAttrs
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isPunct(b byte) bool {
	switch b {
	case '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
		':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^', '_', '`', '{', '|', '}', '~':
		return true
	default:
		return false
	}
}

func countNewLines(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}
