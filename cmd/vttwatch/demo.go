package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/Eyevinn/webvttdec/internal"
	"github.com/Eyevinn/webvttdec/internal/webvtt"
)

const demoGroupDurMS = 1000

// runDemo generates WebVTT cue segments locally with the fixture encoder
// and drives a decoder against them, so the full Open/DecodeBlock/Close
// lifecycle can be exercised without a live MoQ server.
func runDemo(ctx context.Context, opts *options) error {
	st, err := internal.NewSubtitleTrack(opts.trackname, internal.SubtitleFormatWVTT, "en")
	if err != nil {
		return err
	}

	dec, err := webvtt.Open(st.SpecData.Codec(), nil)
	if err != nil {
		return err
	}
	defer dec.Close()

	groupNr := internal.CurrSubtitleGroupNr(0, demoGroupDurMS)
	ticker := time.NewTicker(demoGroupDurMS * time.Millisecond)
	defer ticker.Stop()

	for {
		seg, err := internal.GenSubtitleGroup(st, groupNr, demoGroupDurMS)
		if err != nil {
			return err
		}
		if err := decodeObject(dec, seg.Data, int64(st.TimeScale)); err != nil {
			slog.Debug("demo cue decode error", "error", err)
		}
		groupNr++

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
