package webvtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRegionLine(t *testing.T) {
	r := NewRegion()
	ParseRegionLine(r, "id:fred width:40% regionanchor:0%,100% viewportanchor:10%,90% lines:5 scroll:up")
	require.Equal(t, "fred", r.ID)
	require.True(t, r.HasID)
	require.InDelta(t, 0.4, r.Width, 1e-9)
	require.InDelta(t, 0, r.AnchorX, 1e-9)
	require.InDelta(t, 1, r.AnchorY, 1e-9)
	require.InDelta(t, 0.1, r.ViewportAnchorX, 1e-9)
	require.InDelta(t, 0.9, r.ViewportAnchorY, 1e-9)
	require.Equal(t, 5, r.MaxScrollLines)
	require.True(t, r.ScrollUp)
}

func TestParseRegionLineLinesCapped(t *testing.T) {
	r := NewRegion()
	ParseRegionLine(r, "lines:99")
	require.Equal(t, RegionCueCapacity, r.MaxScrollLines)
}

func TestAddCueNonScrollingHoldsOne(t *testing.T) {
	r := NewRegion() // scroll_up=false by default
	AddCue(r, NewCue(0, 10))
	AddCue(r, NewCue(0, 10))
	AddCue(r, NewCue(0, 10))

	count := 0
	for _, c := range r.Cues {
		if c != nil {
			count++
		}
	}
	require.Equal(t, 1, count)
}

// Scenario 2: scrolling region overflow.
func TestAddCueScrollingOverflow(t *testing.T) {
	r := NewRegion()
	r.ScrollUp = true
	r.MaxScrollLines = 2

	cue1 := NewCue(0, 10)
	cue1.Nodes, cue1.Lines = BuildDOM("one")
	cue2 := NewCue(1, 10)
	cue2.Nodes, cue2.Lines = BuildDOM("two")
	cue3 := NewCue(2, 10)
	cue3.Nodes, cue3.Lines = BuildDOM("three")

	AddCue(r, cue1)
	AddCue(r, cue2)
	AddCue(r, cue3)

	var present []*Cue
	for _, c := range r.Cues {
		if c != nil {
			present = append(present, c)
		}
	}
	require.Len(t, present, 2)
	require.Equal(t, cue2, present[0])
	require.Equal(t, cue3, present[1])
}

// Scenario 3: multi-line cue reduced.
func TestAddCueMultiLineReduced(t *testing.T) {
	r := NewRegion()
	r.ScrollUp = true
	r.MaxScrollLines = 2

	cue := NewCue(0, 10)
	cue.Nodes, cue.Lines = BuildDOM("a\nb\nc")
	require.Equal(t, 3, cue.Lines)

	AddCue(r, cue)

	var present []*Cue
	for _, c := range r.Cues {
		if c != nil {
			present = append(present, c)
		}
	}
	require.Len(t, present, 1)
	require.Equal(t, 2, present[0].Lines)
	require.Equal(t, "b\nc", present[0].Nodes[0].Text)

	next := NewCue(1, 10)
	next.Nodes, next.Lines = BuildDOM("d")
	AddCue(r, next)

	present = present[:0]
	for _, c := range r.Cues {
		if c != nil {
			present = append(present, c)
		}
	}
	require.Len(t, present, 2)
	require.Equal(t, "c", present[0].Nodes[0].Text)
	require.Equal(t, "d", present[1].Nodes[0].Text)
}

func TestClearCuesByTime(t *testing.T) {
	r := NewRegion()
	r.ScrollUp = true
	r.MaxScrollLines = RegionCueCapacity

	a := NewCue(0, 5)
	a.Lines = 1
	b := NewCue(0, 15)
	b.Lines = 1
	AddCue(r, a)
	AddCue(r, b)

	ClearCuesByTime(r, 10)

	var present []*Cue
	for _, c := range r.Cues {
		if c != nil {
			present = append(present, c)
		}
	}
	require.Len(t, present, 1)
	require.Equal(t, b, present[0])
}

func TestGetRegionByIDFallback(t *testing.T) {
	store := NewRegionStore()
	top := NewRegion()
	top.ID, top.HasID = "top", true
	store.AddNamed(top)

	require.Equal(t, top, store.GetRegionByID("top", true))
	require.Equal(t, store.Default, store.GetRegionByID("bottom", true))
	require.Equal(t, store.Default, store.GetRegionByID("", false))
}
