package webvtt

// ConvertCueToSegments flattens a cue's DOM into a linked list of styled
// text segments in document order.
func ConvertCueToSegments(cue *Cue) *TextSegment {
	return convertNodesToSegments(cue.Nodes)
}

func convertNodesToSegments(nodes []*DomNode) *TextSegment {
	var head, tail *TextSegment
	link := func(s *TextSegment) {
		if s == nil {
			return
		}
		if head == nil {
			head = s
		} else {
			tail.Next = s
		}
		for tail = s; tail.Next != nil; tail = tail.Next {
		}
	}

	for _, n := range nodes {
		if n.IsText() {
			link(&TextSegment{
				Text:  DecodeEntities(n.Text),
				Style: InheritStyles(n),
			})
		} else {
			link(convertNodesToSegments(n.Children))
		}
	}
	return head
}

// InheritStyles walks from node up through its parent links to the root,
// computing the union of the style flags applied by <b>, <i> and <u>.
// A <v> with attrs sets the font color; when several such <v> elements
// enclose node, the outermost one's color is kept.
func InheritStyles(node *DomNode) Style {
	var style Style
	for p := node; p != nil; p = p.Parent {
		if p.IsText() {
			continue
		}
		switch p.Tag {
		case "b":
			style.Flags |= StyleBold
		case "i":
			style.Flags |= StyleItalic
		case "u":
			style.Flags |= StyleUnderline
		case "v":
			if p.Attrs != "" {
				var acc uint32
				for i := 0; i < len(p.Attrs); i++ {
					acc = (acc << 3) ^ uint32(p.Attrs[i])
				}
				style.FontColor = (0x7F7F7F | acc) & 0xFFFFFF
				style.HasFontColor = true
			}
		}
	}
	return style
}
