package webvtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertCueToSegmentsSimple(t *testing.T) {
	nodes, lines := BuildDOM("Hello <b>world</b>")
	cue := NewCue(0, 10)
	cue.Nodes, cue.Lines = nodes, lines

	seg := ConvertCueToSegments(cue)
	require.NotNil(t, seg)
	require.Equal(t, "Hello ", seg.Text)
	require.Zero(t, seg.Style.Flags)

	require.NotNil(t, seg.Next)
	require.Equal(t, "world", seg.Next.Text)
	require.Equal(t, StyleBold, seg.Next.Style.Flags)
	require.Nil(t, seg.Next.Next)
}

// Scenario 4: malformed nesting segment conversion.
func TestConvertCueToSegmentsMalformedNestingColor(t *testing.T) {
	nodes, _ := BuildDOM("<b><v Alice>foo</b>bar")
	cue := NewCue(0, 10)
	cue.Nodes = nodes

	seg := ConvertCueToSegments(cue)
	require.NotNil(t, seg)
	require.Equal(t, "foo", seg.Text)
	require.Equal(t, StyleBold, seg.Style.Flags)
	require.True(t, seg.Style.HasFontColor)

	require.NotNil(t, seg.Next)
	require.Equal(t, "bar", seg.Next.Text)
	require.Zero(t, seg.Next.Style.Flags)
	require.False(t, seg.Next.Style.HasFontColor)
}

func TestInheritStylesMonotonic(t *testing.T) {
	// P8: adding an ancestor with a flag never removes one already set.
	inner := &DomNode{Tag: "i"}
	leaf := &DomNode{Text: "x", Parent: inner}

	withoutOuter := InheritStyles(leaf)
	require.Equal(t, StyleItalic, withoutOuter.Flags)

	outer := &DomNode{Tag: "b"}
	inner.Parent = outer
	withOuter := InheritStyles(leaf)
	require.True(t, withOuter.Flags&StyleItalic != 0)
	require.True(t, withOuter.Flags&StyleBold != 0)
}

func TestConvertCueToSegmentsDecodesEntities(t *testing.T) {
	nodes, _ := BuildDOM("Tom &amp; Jerry")
	cue := NewCue(0, 10)
	cue.Nodes = nodes

	seg := ConvertCueToSegments(cue)
	require.Equal(t, "Tom & Jerry", seg.Text)
}
