package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/Eyevinn/mp4ff/bits"
	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/Eyevinn/webvttdec/internal"
	"github.com/Eyevinn/webvttdec/internal/webvtt"
	"github.com/mengelbart/moqtransport"
	"github.com/mengelbart/qlog"
	"github.com/mengelbart/qlog/moqt"
)

type vttHandler struct {
	addr      string
	namespace []string
	trackname string
	logfh     io.Writer

	catalog *internal.Catalog
}

func (h *vttHandler) runClient(ctx context.Context, wt bool) error {
	var conn moqtransport.Connection
	var err error
	if wt {
		conn, err = dialWebTransport(ctx, h.addr)
	} else {
		conn, err = dialQUIC(ctx, h.addr)
	}
	if err != nil {
		return err
	}
	h.handle(ctx, conn)
	<-ctx.Done()
	slog.Info("session ended")
	return ctx.Err()
}

func (h *vttHandler) getHandler() moqtransport.Handler {
	return moqtransport.HandlerFunc(func(w moqtransport.ResponseWriter, r *moqtransport.Message) {
		switch r.Method {
		case moqtransport.MessageAnnounce:
			if !tupleEqual(r.Namespace, h.namespace) {
				slog.Warn("unexpected announcement namespace", "got", r.Namespace, "want", h.namespace)
				if err := w.Reject(0, "non-matching namespace"); err != nil {
					slog.Error("failed to reject announcement", "error", err)
				}
				return
			}
			if err := w.Accept(); err != nil {
				slog.Error("failed to accept announcement", "error", err)
			}
		case moqtransport.MessageSubscribe:
			if err := w.Reject(moqtransport.ErrorCodeSubscribeTrackDoesNotExist, "endpoint does not publish any tracks"); err != nil {
				slog.Error("failed to reject subscription", "error", err)
			}
		}
	})
}

func (h *vttHandler) handle(ctx context.Context, conn moqtransport.Connection) {
	session := moqtransport.NewSession(conn.Protocol(), conn.Perspective(), initialMaxRequestID)
	transport := &moqtransport.Transport{
		Conn:    conn,
		Handler: h.getHandler(),
		Qlogger: qlog.NewQLOGHandler(h.logfh, "vttwatch QLOG", "vttwatch QLOG", conn.Perspective().String(), moqt.Schema),
		Session: session,
	}
	if err := transport.Run(); err != nil {
		slog.Error("MoQ session initialization failed", "error", err)
		_ = conn.CloseWithError(0, "session initialization error")
		return
	}

	if err := h.subscribeToCatalog(ctx, session); err != nil {
		slog.Error("failed to subscribe to catalog", "error", err)
		_ = conn.CloseWithError(0, "internal error")
		return
	}

	if err := h.subscribeAndDecode(ctx, session); err != nil {
		slog.Error("failed to subscribe to subtitle track", "error", err)
		_ = conn.CloseWithError(0, "internal error")
		return
	}

	<-ctx.Done()
}

func (h *vttHandler) subscribeToCatalog(ctx context.Context, s *moqtransport.Session) error {
	rs, err := s.Subscribe(ctx, h.namespace, "catalog", "")
	if err != nil {
		return err
	}
	defer rs.Close()

	o, err := rs.ReadObject(ctx)
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(o.Payload, &h.catalog); err != nil {
		return err
	}
	slog.Info("got catalog", "object", o.ObjectID, "group", o.GroupID, "bytes", len(o.Payload))
	return nil
}

// subscribeAndDecode subscribes to track, decodes the codec string and
// any region extradata out of its init segment, then drives a
// webvtt.Decoder with every CMAF fragment received on the subscription.
func (h *vttHandler) subscribeAndDecode(ctx context.Context, s *moqtransport.Session) error {
	track := h.catalog.GetTrackByName(h.trackname)
	if track == nil {
		return fmt.Errorf("%w: %s", internal.ErrTrackNotFound, h.trackname)
	}

	codec, extradata, err := decodeTrackInit(track)
	if err != nil {
		return fmt.Errorf("decode init segment for track %s: %w", track.Name, err)
	}

	dec, err := webvtt.Open(codec, extradata)
	if err != nil {
		return fmt.Errorf("open decoder for track %s: %w", track.Name, err)
	}

	rs, err := s.Subscribe(ctx, h.namespace, track.Name, "")
	if err != nil {
		return err
	}

	timescale := int64(SubsTimescaleOrDefault(track))

	go func() {
		defer rs.Close()
		defer dec.Close()
		for {
			o, err := rs.ReadObject(ctx)
			if err != nil {
				if err != io.EOF {
					slog.Debug("subscription ended", "track", track.Name, "error", err)
				}
				return
			}
			if err := decodeObject(dec, o.Payload, timescale); err != nil {
				slog.Debug("skipping malformed cue object", "track", track.Name, "error", err)
			}
		}
	}()
	return nil
}

// decodeTrackInit recovers the codec tag and header extradata a decoder
// needs to Open from a catalog track's base64 init segment.
func decodeTrackInit(track *internal.Track) (codec string, extradata []byte, err error) {
	if track.InitData == "" {
		return track.Codec, nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(track.InitData)
	if err != nil {
		return "", nil, err
	}
	sr := bits.NewFixedSliceReader(raw)
	f, err := mp4.DecodeFileSR(sr)
	if err != nil {
		return "", nil, err
	}
	if f.Init == nil || f.Init.Moov == nil || f.Init.Moov.Trak == nil {
		return "", nil, fmt.Errorf("init segment has no track")
	}
	sampleDesc, err := f.Init.Moov.Trak.Mdia.Minf.Stbl.Stsd.GetSampleDescription(0)
	if err != nil {
		return "", nil, err
	}
	codec = sampleDesc.Type()
	if wvtt, ok := sampleDesc.(*mp4.WvttBox); ok && wvtt.VttC != nil {
		extradata = []byte(wvtt.VttC.Config)
	}
	return codec, extradata, nil
}

// SubsTimescaleOrDefault returns the catalog-declared timescale for
// track, falling back to the 1ms resolution the fixture encoder uses.
func SubsTimescaleOrDefault(track *internal.Track) int {
	if track.Timescale != nil && *track.Timescale > 0 {
		return *track.Timescale
	}
	return internal.SubsTimeTimescale
}

// decodeObject parses one CMAF fragment object's samples and feeds each
// through dec, logging any rendered subpicture.
func decodeObject(dec *webvtt.Decoder, payload []byte, timescale int64) error {
	sr := bits.NewFixedSliceReader(payload)
	f, err := mp4.DecodeFileSR(sr)
	if err != nil {
		return err
	}
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			samples, err := frag.GetFullSamples(nil)
			if err != nil {
				return err
			}
			for _, s := range samples {
				dtsMS := msFromTimescale(int64(s.DecodeTime), timescale)
				durMS := msFromTimescale(int64(s.Dur), timescale)
				sp, err := dec.DecodeBlock(&webvtt.Block{
					Bytes:  s.Data,
					DTS:    dtsMS,
					PTS:    dtsMS,
					Length: durMS,
				})
				if err != nil {
					slog.Debug("cue decode error", "error", err)
					continue
				}
				if sp != nil {
					slog.Info("rendered subpicture", "start", sp.Start, "stop", sp.Stop)
				}
			}
		}
	}
	return nil
}

func msFromTimescale(v, timescale int64) int64 {
	if timescale == 0 {
		return v
	}
	return 1000 * v / timescale
}

func tupleEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, t := range a {
		if t != b[i] {
			return false
		}
	}
	return true
}
