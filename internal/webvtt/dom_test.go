package webvtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildDOMSimple(t *testing.T) {
	roots, lines := BuildDOM("Hello <b>world</b>")
	require.Equal(t, 1, lines)
	require.Len(t, roots, 2)

	require.True(t, roots[0].IsText())
	require.Equal(t, "Hello ", roots[0].Text)

	require.False(t, roots[1].IsText())
	require.Equal(t, "b", roots[1].Tag)
	require.Len(t, roots[1].Children, 1)
	require.Equal(t, "world", roots[1].Children[0].Text)
	require.Same(t, roots[1], roots[1].Children[0].Parent)
}

// Scenario 4: malformed nesting.
func TestBuildDOMMalformedNesting(t *testing.T) {
	roots, _ := BuildDOM("<b><v Alice>foo</b>bar")
	require.Len(t, roots, 2)

	b := roots[0]
	require.Equal(t, "b", b.Tag)
	require.Len(t, b.Children, 1)

	v := b.Children[0]
	require.Equal(t, "v", v.Tag)
	require.Equal(t, " Alice", v.Attrs)
	require.Len(t, v.Children, 1)
	require.Equal(t, "foo", v.Children[0].Text)

	bar := roots[1]
	require.True(t, bar.IsText())
	require.Equal(t, "bar", bar.Text)
	require.Nil(t, bar.Parent)
}

func TestBuildDOMTrailingText(t *testing.T) {
	roots, lines := BuildDOM("<i>a</i> trailing")
	require.Equal(t, 1, lines)
	require.Len(t, roots, 2)
	require.Equal(t, " trailing", roots[1].Text)
}

func TestBuildDOMNewlineCounting(t *testing.T) {
	_, lines := BuildDOM("a\nb\nc")
	require.Equal(t, 3, lines)
}

func TestBuildDOMNewlineAcrossTags(t *testing.T) {
	// Q2/Q3: lines = 1 + total newline count, even when text is split
	// across multiple nodes by tags.
	_, lines := BuildDOM("a\n<b>b</b>\nc")
	require.Equal(t, 3, lines)
}

func TestBuildDOMEmptyPayload(t *testing.T) {
	roots, lines := BuildDOM("")
	require.Empty(t, roots)
	require.Equal(t, 0, lines)
}

func TestBuildDOMInvalidShortTag(t *testing.T) {
	// "<>" is invalid; everything from it onward becomes literal text.
	roots, _ := BuildDOM("hi<>there")
	require.Len(t, roots, 1)
	require.Equal(t, "hi<>there", roots[0].Text)
}

func TestBuildDOMEndTagEmptyForm(t *testing.T) {
	// "</>" is an invalid end-tag shape; scan stops there.
	roots, _ := BuildDOM("hi</>there")
	require.Len(t, roots, 1)
	require.Equal(t, "hi</>there", roots[0].Text)
}

func TestBuildDOMStrayEndTagAtRoot(t *testing.T) {
	roots, _ := BuildDOM("foo</b>bar")
	require.Len(t, roots, 2)
	require.Equal(t, "foo", roots[0].Text)
	require.Equal(t, "bar", roots[1].Text)
}

func TestBuildDOMUnmatchedEndTagFallsBackToRoot(t *testing.T) {
	// </i> matches no open ancestor of <b>, so appending falls back to
	// root level for good: "bar" and the stray "</b>" (a no-op, nothing
	// is open to match it) and "baz" all land as top-level siblings.
	roots, _ := BuildDOM("<b>foo</i>bar</b>baz")
	require.Len(t, roots, 3)

	b := roots[0]
	require.Equal(t, "b", b.Tag)
	require.Len(t, b.Children, 1)
	require.Equal(t, "foo", b.Children[0].Text)

	require.True(t, roots[1].IsText())
	require.Equal(t, "bar", roots[1].Text)
	require.True(t, roots[2].IsText())
	require.Equal(t, "baz", roots[2].Text)
}
