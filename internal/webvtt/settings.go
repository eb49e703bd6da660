package webvtt

// Align is the small alignment enumeration shared by cue settings and
// region rendering.
type Align int

const (
	AlignAuto Align = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignStart
	AlignEnd
)

// CueSettings holds the typed WebVTT cue settings parsed from an "sttg"
// box's tuple stream.
type CueSettings struct {
	RegionID      string
	HasRegionID   bool
	Vertical      Align
	SnapToLines   bool
	Line          float64
	LineAlign     Align
	Position      float64
	PositionAlign Align
	Size          float64
	Align         Align
}

// NewCueSettings returns the default settings of a freshly created cue.
func NewCueSettings() CueSettings {
	return CueSettings{
		Vertical:      AlignAuto,
		SnapToLines:   true,
		Line:          -1,
		LineAlign:     AlignStart,
		Position:      -1,
		PositionAlign: AlignAuto,
		Size:          1.0,
		Align:         AlignCenter,
	}
}

// ParseCueSettings feeds a raw "sttg" payload (space separated key:value
// tuples) into a fresh CueSettings, applying only the recognized keys.
func ParseCueSettings(raw string) CueSettings {
	s := NewCueSettings()
	for _, kv := range TupleStream(raw, ' ', ':') {
		applyCueSettingTuple(&s, kv.Key, kv.Value)
	}
	return s
}

func applyCueSettingTuple(s *CueSettings, key, value string) {
	switch key {
	case "vertical":
		switch value {
		case "rl":
			s.Vertical = AlignRight
		case "lr":
			s.Vertical = AlignLeft
		default:
			s.Vertical = AlignAuto
		}
	case "line":
		valuePart, alignPart, hasAlign := cutComma(value)
		if containsPercent(valuePart) {
			if v, ok := ParsePercent(valuePart); ok {
				s.Line = v
			}
		}
		if hasAlign {
			switch alignPart {
			case "center":
				s.LineAlign = AlignCenter
			case "end":
				s.LineAlign = AlignEnd
			default:
				s.LineAlign = AlignStart
			}
		}
	case "position":
		valuePart, alignPart, hasAlign := cutComma(value)
		if v, ok := ParsePercent(valuePart); ok {
			s.Position = v
		}
		if hasAlign {
			// The alignment sub-value of "position" governs position-align,
			// not line-align.
			switch alignPart {
			case "line-left":
				s.PositionAlign = AlignLeft
			case "line-right":
				s.PositionAlign = AlignRight
			case "center":
				s.PositionAlign = AlignCenter
			default:
				s.PositionAlign = AlignAuto
			}
		}
	case "size":
		if v, ok := ParsePercent(value); ok {
			s.Size = v
		}
	case "region":
		s.RegionID = value
		s.HasRegionID = true
	case "align":
		switch value {
		case "start":
			s.Align = AlignStart
		case "end":
			s.Align = AlignEnd
		case "left":
			s.Align = AlignLeft
		case "right":
			s.Align = AlignRight
		default:
			s.Align = AlignCenter
		}
	}
}

// cutComma splits value on the first ',' the way the source's
// strchr(psz_value, ',') does: everything before the comma is "value",
// everything after is "align". hasAlign is false when there is no comma.
func cutComma(value string) (before, after string, hasAlign bool) {
	for i := 0; i < len(value); i++ {
		if value[i] == ',' {
			return value[:i], value[i+1:], true
		}
	}
	return value, "", false
}

func containsPercent(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			return true
		}
	}
	return false
}
