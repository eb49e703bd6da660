package webvtt

const defaultLineHeightVH = 5.33

// Block is one presentation tick's worth of ISOBMFF cue bytes, as
// delivered by the host demuxer.
type Block struct {
	Bytes  []byte
	DTS    int64
	PTS    int64
	Length int64
}

// Decoder holds the per-instance state of a WebVTT-in-ISOBMFF cue
// decoder: the region store and whatever regions its extradata declared.
type Decoder struct {
	store *RegionStore
}

// Open allocates a decoder for a track whose codec tag identifies
// WebVTT, loading any region declarations out of extradata.
func Open(codec string, extradata []byte) (*Decoder, error) {
	if codec != "wvtt" && codec != "webvtt" {
		return nil, ErrUnsupportedMediaType
	}
	d := &Decoder{store: NewRegionStore()}
	if len(extradata) > 0 {
		LoadExtradata(d.store, extradata)
	}
	return d, nil
}

// DecodeBlock runs one atomic decode tick: expire stale cues at b.DTS,
// demux and insert any new cues from b.Bytes, then render the regions
// active at b.PTS. b == nil is a no-drain signal and returns (nil, nil).
func (d *Decoder) DecodeBlock(b *Block) (*Subpicture, error) {
	if b == nil {
		return nil, nil
	}
	ExpireCues(d.store, b.DTS)
	ProcessISOBMFF(d.store, b.Bytes, b.PTS, b.PTS+b.Length)
	return RenderRegions(d.store, b.PTS, b.PTS+b.Length), nil
}

// Close releases the decoder's regions. Named regions are cleared
// before the default region, mirroring the order the original plugin's
// region list was walked at close time.
func (d *Decoder) Close() {
	for _, r := range d.store.Named {
		clearAllCues(r)
	}
	clearAllCues(d.store.Default)
	d.store.Named = nil
}

// ExpireCues drops every cue with stop <= t from every region, default
// region first then named regions in declaration order.
func ExpireCues(store *RegionStore, t int64) {
	for _, r := range store.All() {
		ClearCuesByTime(r, t)
	}
}

// RenderRegions builds the subpicture for [pts, stop): one updater
// region per VTT region holding at least one cue active at pts, or nil
// if nothing is active anywhere.
func RenderRegions(store *RegionStore, pts, stop int64) *Subpicture {
	var sp *Subpicture

	for i, region := range store.All() {
		segments := renderRegionSegments(region, pts)
		if segments == nil {
			continue
		}

		leftOffset := region.AnchorX * region.Width
		left := region.ViewportAnchorX - leftOffset
		topOffset := region.AnchorY * float64(region.MaxScrollLines) * defaultLineHeightVH / 100
		top := region.ViewportAnchorY - topOffset

		if sp == nil {
			sp = &Subpicture{Start: pts, Stop: stop}
		}

		ur := &UpdaterRegion{
			OriginXIsRatio: true,
			OriginYIsRatio: true,
			ExtentXIsRatio: true,
			Segments:       segments,
		}
		if i == 0 {
			ur.Align = AlignBottom
		} else {
			ur.Align = AlignTopFlag | AlignLeftFlag
			ur.OriginX = left
			ur.OriginY = top
			ur.ExtentX = region.Width
		}
		sp.AddRegion(ur)
	}

	if sp != nil {
		sp.Ephemeral = true
		sp.Absolute = false
		sp.FontRelSize = defaultLineHeightVH / 1.06
	}
	return sp
}

func renderRegionSegments(region *Region, pts int64) *TextSegment {
	var head, tail *TextSegment
	appendChain := func(chain *TextSegment) {
		if chain == nil {
			return
		}
		if head == nil {
			head = chain
		} else {
			tail.Next = chain
		}
		for tail = chain; tail.Next != nil; tail = tail.Next {
		}
	}

	for _, cue := range region.Cues {
		if cue == nil || cue.Start > pts || cue.Stop <= pts {
			continue
		}
		segs := ConvertCueToSegments(cue)
		if segs == nil {
			continue
		}
		if head != nil {
			appendChain(&TextSegment{Text: "\n"})
		}
		appendChain(segs)
	}
	return head
}
