package webvtt

import "strings"

// LoadExtradata reads a WebVTT header blob line by line and commits any
// REGION blocks it declares into store. Blocks are separated by a blank
// line or end of input; a region is only committed once it has been
// given a non-empty id (an incomplete declaration is discarded).
func LoadExtradata(store *RegionStore, extradata []byte) {
	var current *Region
	inRegion := false

	commit := func() {
		if current == nil {
			return
		}
		if current.HasID && current.ID != "" {
			store.AddNamed(current)
		}
		current = nil
	}

	for _, line := range splitHeaderLines(string(extradata)) {
		switch {
		case line == "":
			commit()
			inRegion = false
		case line == "REGION":
			commit()
			inRegion = true
			current = NewRegion()
		case inRegion && current != nil:
			ParseRegionLine(current, line)
		}
	}
	commit()
}

func splitHeaderLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
