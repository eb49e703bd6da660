package webvtt

// RegionCueCapacity is the fixed scrollback capacity of a region: slot 0
// is the oldest cue, slot RegionCueCapacity-1 is the newest.
const RegionCueCapacity = 18

// Region is a typed WebVTT region definition plus its bounded scrollback
// buffer of active cues.
type Region struct {
	ID    string
	HasID bool

	Width                            float64
	AnchorX, AnchorY                 float64
	ViewportAnchorX, ViewportAnchorY float64
	MaxScrollLines                   int
	ScrollUp                         bool

	Cues [RegionCueCapacity]*Cue
}

// NewRegion returns a region with the WebVTT default geometry.
func NewRegion() *Region {
	return &Region{
		Width:           1.0,
		AnchorX:         0,
		AnchorY:         1.0,
		ViewportAnchorX: 0,
		ViewportAnchorY: 1.0,
		MaxScrollLines:  3,
		ScrollUp:        false,
	}
}

// ParseRegionLine feeds one header line's space-separated key:value
// tuples into region, applying only the recognized keys.
func ParseRegionLine(region *Region, line string) {
	for _, kv := range TupleStream(line, ' ', ':') {
		applyRegionTuple(region, kv.Key, kv.Value)
	}
}

func applyRegionTuple(region *Region, key, value string) {
	switch key {
	case "id":
		region.ID = value
		region.HasID = true
	case "width":
		if v, ok := ParsePercent(value); ok {
			region.Width = v
		}
	case "regionanchor":
		if x, y, ok := ParsePercentPair(value); ok {
			region.AnchorX, region.AnchorY = x, y
		}
	case "viewportanchor":
		if x, y, ok := ParsePercentPair(value); ok {
			region.ViewportAnchorX, region.ViewportAnchorY = x, y
		}
	case "lines":
		if n, ok := parsePositiveInt(value); ok {
			if n > RegionCueCapacity {
				n = RegionCueCapacity
			}
			region.MaxScrollLines = n
		}
	case "scroll":
		region.ScrollUp = value == "up"
	}
}

func parsePositiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// currentLineCount sums Lines across every occupied slot.
func currentLineCount(region *Region) int {
	total := 0
	for _, c := range region.Cues {
		if c != nil {
			total += c.Lines
		}
	}
	return total
}

func clearAllCues(region *Region) {
	for i := range region.Cues {
		region.Cues[i] = nil
	}
}

// ReduceRegion frees a line of scrollback to make room for an incoming
// cue: it destroys the oldest slot outright, or if the oldest slot is
// already empty, reduces the oldest occupied cue by one line.
func ReduceRegion(region *Region) {
	if region.Cues[0] != nil {
		region.Cues[0] = nil
		return
	}
	for i := 1; i < RegionCueCapacity; i++ {
		if region.Cues[i] != nil {
			region.Cues[i] = Reduce(region.Cues[i])
			return
		}
	}
}

// ScrollUp evicts the oldest cue and shifts every remaining slot one
// step toward the oldest end, leaving the newest slot free.
func ScrollUp(region *Region) {
	copy(region.Cues[0:RegionCueCapacity-1], region.Cues[1:RegionCueCapacity])
	region.Cues[RegionCueCapacity-1] = nil
}

// AddCue inserts cue into region per the scrolling/non-scrolling
// insertion algorithm, enforcing the line-budget invariant.
func AddCue(region *Region, cue *Cue) {
	if !region.ScrollUp {
		clearAllCues(region)
		region.Cues[RegionCueCapacity-1] = cue
		return
	}

	for cue.Lines > region.MaxScrollLines {
		cue = Reduce(cue)
		if cue == nil {
			return
		}
	}
	for currentLineCount(region)+cue.Lines > region.MaxScrollLines {
		ReduceRegion(region)
	}
	ScrollUp(region)
	region.Cues[RegionCueCapacity-1] = cue
}

// ClearCuesByTime drops every cue whose Stop <= t, left-packing the
// survivors toward the oldest end while preserving their relative
// order.
func ClearCuesByTime(region *Region, t int64) {
	n := 0
	for i := 0; i < RegionCueCapacity; i++ {
		c := region.Cues[i]
		if c == nil || c.Stop <= t {
			continue
		}
		region.Cues[n] = c
		n++
	}
	for i := n; i < RegionCueCapacity; i++ {
		region.Cues[i] = nil
	}
}

// RegionStore owns the always-present default region and the ordered
// list of named regions declared by the header.
type RegionStore struct {
	Default *Region
	Named   []*Region
}

// NewRegionStore returns a store with a freshly initialized default
// region and no named regions.
func NewRegionStore() *RegionStore {
	return &RegionStore{Default: NewRegion()}
}

// AddNamed appends a named region to the store. Callers are expected to
// have already checked HasID and non-empty ID before committing.
func (s *RegionStore) AddNamed(r *Region) {
	s.Named = append(s.Named, r)
}

// GetRegionByID resolves id to a region: hasID=false (or empty id)
// yields the default region; otherwise the first named region with a
// matching id, falling back to the default region on no match.
func (s *RegionStore) GetRegionByID(id string, hasID bool) *Region {
	if !hasID || id == "" {
		return s.Default
	}
	for _, r := range s.Named {
		if r.ID == id {
			return r
		}
	}
	return s.Default
}

// All returns the default region followed by named regions in
// declaration order, the iteration order used by expiry and rendering.
func (s *RegionStore) All() []*Region {
	out := make([]*Region, 0, len(s.Named)+1)
	out = append(out, s.Default)
	out = append(out, s.Named...)
	return out
}
