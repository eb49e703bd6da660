package webvtt

import "encoding/binary"

// BoxIterator is a pull iterator over a contiguous ISOBMFF box buffer,
// used both for the outer vttc/vttx/vtte stream and, recursively, for
// each cue box's inner iden/sttg/payl children.
//
// Full mp4ff box decoding (mp4.DecodeBox/DecodeFileSR) walks a
// registered box-type tree and isn't a good fit here: vttx is not a
// registered ISO/IEC 14496-30 type, and this demux needs raw,
// untyped child ranges rather than a fully materialized tree. The
// 8-byte size+FourCC header this reads is exactly what mp4ff itself
// decodes at the lowest level, just without going through its type
// registry.
type BoxIterator struct {
	buf []byte
	pos int
}

// NewBoxIterator returns an iterator over buf starting at offset 0.
func NewBoxIterator(buf []byte) *BoxIterator {
	return &BoxIterator{buf: buf}
}

// Next returns the next box's 4-character type and payload, or
// ok=false when the buffer is exhausted or the next header is
// malformed (short, truncated size, or a nonzero size < 8). A size of
// 0 means the box runs to the end of the buffer.
func (it *BoxIterator) Next() (boxType string, payload []byte, ok bool) {
	if it.pos+8 > len(it.buf) {
		return "", nil, false
	}
	size := binary.BigEndian.Uint32(it.buf[it.pos : it.pos+4])
	boxType = string(it.buf[it.pos+4 : it.pos+8])

	if size == 0 {
		payload = it.buf[it.pos+8:]
		it.pos = len(it.buf)
		return boxType, payload, true
	}
	if size < 8 || it.pos+int(size) > len(it.buf) {
		return "", nil, false
	}
	payload = it.buf[it.pos+8 : it.pos+int(size)]
	it.pos += int(size)
	return boxType, payload, true
}

// ProcessISOBMFF demuxes one block's outer vttc/vttx/vtte boxes,
// building and inserting a cue for each populated one into store.
func ProcessISOBMFF(store *RegionStore, buf []byte, start, stop int64) {
	outer := NewBoxIterator(buf)
	for {
		boxType, payload, ok := outer.Next()
		if !ok {
			return
		}
		switch boxType {
		case "vttc", "vttx":
			processCueBox(store, payload, start, stop)
		case "vtte":
			// Empty cue: iterate for tolerance, produce nothing.
			drainBoxes(payload)
		default:
			// Skipped.
		}
	}
}

func drainBoxes(payload []byte) {
	it := NewBoxIterator(payload)
	for {
		if _, _, ok := it.Next(); !ok {
			return
		}
	}
}

func processCueBox(store *RegionStore, payload []byte, start, stop int64) {
	cue := NewCue(start, stop)

	inner := NewBoxIterator(payload)
	for {
		boxType, innerPayload, ok := inner.Next()
		if !ok {
			break
		}
		switch boxType {
		case "iden":
			cue.ID = string(innerPayload)
			cue.HasID = true
		case "sttg":
			cue.Settings = ParseCueSettings(string(innerPayload))
		case "payl":
			if cue.Nodes == nil {
				cue.Nodes, cue.Lines = BuildDOM(string(innerPayload))
			}
		}
	}

	region := store.GetRegionByID(cue.Settings.RegionID, cue.Settings.HasRegionID)
	AddCue(region, cue)
}
