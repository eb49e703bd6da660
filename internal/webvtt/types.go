package webvtt

// StyleFlag is a bitmask of inline text styling accumulated while
// walking a DOM node's ancestor chain.
type StyleFlag uint8

const (
	StyleBold StyleFlag = 1 << iota
	StyleItalic
	StyleUnderline
)

// Style is the inherited styling of one text segment.
type Style struct {
	Flags        StyleFlag
	FontColor    uint32
	HasFontColor bool
}

// TextSegment is one node of the flat, styled text list a cue's DOM is
// converted into (C10). Segments form a singly linked list mirroring
// the original p_segments chain.
type TextSegment struct {
	Text  string
	Style Style
	Next  *TextSegment
}

// RegionAlign is the bitmask of anchor edges an UpdaterRegion is pinned
// to within the viewport.
type RegionAlign uint8

const (
	AlignBottom RegionAlign = 1 << iota
	AlignTopFlag
	AlignLeftFlag
	AlignRightFlag
)

// UpdaterRegion is one rendered VTT region's placement and content for
// a single subpicture tick.
type UpdaterRegion struct {
	Align RegionAlign

	OriginX, OriginY float64
	OriginXIsRatio   bool
	OriginYIsRatio   bool
	ExtentX, ExtentY float64
	ExtentXIsRatio   bool

	Segments *TextSegment

	Next *UpdaterRegion
}

// Subpicture is a host-side structured overlay produced by one decode
// tick: a time interval plus a linked list of placed regions.
type Subpicture struct {
	Start, Stop int64
	Ephemeral   bool
	Absolute    bool
	FontRelSize float64

	Regions *UpdaterRegion
	last    *UpdaterRegion
}

// AddRegion links r into the subpicture's region list, preserving
// insertion order (default region first, named regions after).
func (sp *Subpicture) AddRegion(r *UpdaterRegion) {
	if sp.Regions == nil {
		sp.Regions = r
	} else {
		sp.last.Next = r
	}
	sp.last = r
}
