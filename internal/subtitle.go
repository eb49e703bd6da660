package internal

import (
	"fmt"
	"time"

	"github.com/Eyevinn/mp4ff/bits"
	"github.com/Eyevinn/mp4ff/mp4"
)

// Subtitle constants
const (
	SubsTimeTimescale = 1000 // 1ms resolution
	DefaultCueDurMS   = 900  // Cue duration in ms
)

// SubtitleFormat represents the subtitle format type. WebVTT is the only
// format this decoder module consumes; the field is kept as a type
// rather than hardcoded so a caller's intent is explicit at call sites.
type SubtitleFormat string

const (
	SubtitleFormatWVTT SubtitleFormat = "wvtt"
)

// SubtitleTrack represents a dynamically generated subtitle track
type SubtitleTrack struct {
	Name      string
	Format    SubtitleFormat
	Language  string
	TimeScale uint32
	CueDurMS  int
	Region    int // 0=bottom, 1=top
	SpecData  *SubtitleData
}

// SubtitleData holds the codec-specific data of a subtitle track
type SubtitleData struct {
	format   SubtitleFormat
	language string
}

// GenCMAFInitData generates the CMAF init segment data for subtitles
func (d *SubtitleData) GenCMAFInitData() ([]byte, error) {
	if d.format != SubtitleFormatWVTT {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, d.format)
	}
	init := createSubtitlesWvttInitSegment(d.language, SubsTimeTimescale)

	sw := bits.NewFixedSliceWriter(int(init.Size()))
	err := init.EncodeSW(sw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode init segment: %w", err)
	}
	return sw.Bytes(), nil
}

// Codec returns the codec string for this subtitle format
func (d *SubtitleData) Codec() string {
	return string(d.format)
}

// NewSubtitleTrack creates a new subtitle track with the given parameters
func NewSubtitleTrack(name string, format SubtitleFormat, lang string) (*SubtitleTrack, error) {
	if format != SubtitleFormatWVTT {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, format)
	}
	st := &SubtitleTrack{
		Name:      name,
		Format:    format,
		Language:  lang,
		TimeScale: SubsTimeTimescale,
		CueDurMS:  DefaultCueDurMS,
		Region:    0, // bottom by default
		SpecData: &SubtitleData{
			format:   format,
			language: lang,
		},
	}
	return st, nil
}

// createSubtitlesWvttInitSegment creates a WVTT init segment
func createSubtitlesWvttInitSegment(lang string, timescale uint32) *mp4.InitSegment {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "wvtt", lang)
	trak := init.Moov.Trak
	_ = trak.SetWvttDescriptor("WEBVTT")
	return init
}

// cueItvl represents a cue interval with media times and UTC second
type cueItvl struct {
	startMS, endMS, utcS int
}

// calcCueItvls calculates cue intervals for a segment
// All times are in milliseconds
func calcCueItvls(segStart, segDur, utcStart, cueDur int) []cueItvl {
	itvls := make([]cueItvl, 0, 2)

	diff := segStart - utcStart
	utcEndMS := utcStart + segDur

	cueFullS := (cueDur + 999) / 1000
	cueFullMS := cueFullS * 1000

	for utcS := utcStart / cueFullMS; utcS <= (utcStart+segDur)/cueFullMS; utcS += cueFullS {
		cueStartMS := utcS * 1000
		if cueStartMS == utcEndMS {
			break
		}
		ci := cueItvl{
			utcS:    utcS,
			startMS: cueStartMS,
			endMS:   cueStartMS + cueDur,
		}
		if ci.startMS < utcStart {
			ci.startMS = utcStart
		}
		if utcEndMS < ci.endMS {
			ci.endMS = utcEndMS
		}
		ci.startMS += diff
		ci.endMS += diff
		itvls = append(itvls, ci)
	}
	return itvls
}

// makeWvttCuePayload builds a vttc box carrying a timestamp/language/group
// cue, matching the iden/sttg/payl layout internal/webvtt's demux consumes.
func makeWvttCuePayload(lang string, region, utcMS, groupNr int) []byte {
	t := time.UnixMilli(int64(utcMS))
	utc := t.UTC().Format(time.RFC3339)
	pl := mp4.PaylBox{
		CueText: fmt.Sprintf("%s\n%s # %d", utc, lang, groupNr),
	}
	vttc := mp4.VttcBox{}
	if region == 1 {
		sttg := mp4.SttgBox{
			Settings: "line:2",
		}
		vttc.AddChild(&sttg)
	}
	vttc.AddChild(&pl)
	sw := bits.NewFixedSliceWriter(int(vttc.Size()))
	err := vttc.EncodeSW(sw)
	if err != nil {
		panic("cannot write vttc")
	}
	return sw.Bytes()
}

// SubtitleSegment is one encoded CMAF media segment for a subtitle track,
// with the media-timeline window it covers.
type SubtitleSegment struct {
	StartTime uint64
	EndTime   uint64
	Data      []byte
}

// GenSubtitleGroup generates one second-aligned CMAF media segment of
// WebVTT cue content for st, starting at groupNr*groupDurMS.
func GenSubtitleGroup(st *SubtitleTrack, groupNr uint64, groupDurMS uint32) (*SubtitleSegment, error) {
	if st.Format != SubtitleFormatWVTT {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, st.Format)
	}

	baseMediaDecodeTime := groupNr * uint64(groupDurMS)
	dur := groupDurMS
	utcTimeMS := baseMediaDecodeTime

	data, err := createSubtitlesWvttMediaData(uint32(groupNr), baseMediaDecodeTime, dur, st.Language,
		utcTimeMS, st.CueDurMS, st.Region)
	if err != nil {
		return nil, err
	}

	return &SubtitleSegment{
		StartTime: baseMediaDecodeTime,
		EndTime:   baseMediaDecodeTime + uint64(dur),
		Data:      data,
	}, nil
}

// createSubtitlesWvttMediaData creates WVTT media segment data (raw bytes)
func createSubtitlesWvttMediaData(nr uint32, baseMediaDecodeTime uint64, dur uint32, lang string, utcTimeMS uint64,
	cueDurMS, region int) ([]byte, error) {
	seg := mp4.NewMediaSegment()
	frag, err := mp4.CreateFragment(nr, 1)
	if err != nil {
		return nil, err
	}
	seg.AddFragment(frag)

	cueItvls := calcCueItvls(int(baseMediaDecodeTime), int(dur), int(utcTimeMS), cueDurMS)
	currEnd := baseMediaDecodeTime
	vtte := []byte{0, 0, 0, 8, 0x76, 0x74, 0x74, 0x65} // Empty VTT cue box

	for _, ci := range cueItvls {
		start := ci.startMS
		end := ci.endMS
		cuePL := makeWvttCuePayload(lang, region, ci.utcS*1000, int(nr))
		if start > int(currEnd) {
			frag.AddFullSample(fullSample(int(currEnd), start, vtte))
		}
		frag.AddFullSample(fullSample(start, end, cuePL))
		currEnd = uint64(end)
	}
	segEnd := int(baseMediaDecodeTime) + int(dur)
	if int(currEnd) < segEnd {
		frag.AddFullSample(fullSample(int(currEnd), segEnd, vtte))
	}

	size := int(seg.Size())
	sw := bits.NewFixedSliceWriter(size)
	err = seg.EncodeSW(sw)
	if err != nil {
		return nil, err
	}
	return sw.Bytes(), nil
}

// fullSample creates a FullSample from start/end times and data
func fullSample(start int, end int, data []byte) mp4.FullSample {
	return mp4.FullSample{
		Sample: mp4.Sample{
			Flags: mp4.SyncSampleFlags,
			Dur:   uint32(end - start),
			Size:  uint32(len(data)),
		},
		DecodeTime: uint64(start),
		Data:       data,
	}
}

// CurrSubtitleGroupNr returns the current second-aligned group number for
// a subtitle track given the current media time.
func CurrSubtitleGroupNr(nowMS uint64, groupDurMS uint32) uint64 {
	return nowMS / uint64(groupDurMS)
}
