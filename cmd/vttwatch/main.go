package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Eyevinn/webvttdec/internal"
	"github.com/mengelbart/moqtransport"
	"github.com/mengelbart/moqtransport/quicmoq"
	"github.com/mengelbart/moqtransport/webtransportmoq"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/webtransport-go"
)

const (
	appName             = "vttwatch"
	defaultQlogFileName = "vttwatch.log"
	initialMaxRequestID = 100
)

var usg = `%s is a MoQ client that subscribes to a live WebVTT subtitle
track, decodes its WebVTT-in-ISOBMFF cues, and logs each rendered
subpicture as it becomes active.

Usage of %s:
`

type options struct {
	addr      string
	trackname string
	duration  int
	qlogfile  string
	loglevel  string
	demo      bool
	version   bool
}

func parseOptions(fs *flag.FlagSet, args []string) (*options, error) {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, usg, appName, appName)
		fmt.Fprintf(os.Stderr, "%s [options]\n\noptions:\n", appName)
		fs.PrintDefaults()
	}

	opts := options{}
	fs.StringVar(&opts.addr, "addr", "localhost:8080", "connect address (use https:// for WebTransport)")
	fs.StringVar(&opts.trackname, "trackname", "subs_wvtt_en", "subtitle track to subscribe to")
	fs.IntVar(&opts.duration, "duration", 0, "duration of session in seconds (0 means unlimited)")
	fs.StringVar(&opts.qlogfile, "qlog", defaultQlogFileName, "qlog file to write to. Use '-' for stderr")
	fs.StringVar(&opts.loglevel, "loglevel", "info", "log level: debug, info, warning, error")
	fs.BoolVar(&opts.demo, "demo", false, "skip the network and decode locally generated demo cues")
	fs.BoolVar(&opts.version, "version", false, fmt.Sprintf("get %s version", appName))

	err := fs.Parse(args[1:])
	return &opts, err
}

func main() {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	opts, err := parseOptions(fs, os.Args)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error parsing options: %v\n", err)
		}
		os.Exit(1)
	}

	if err := runWithOptions(opts); err != nil {
		slog.Error("error running application", "error", err)
		os.Exit(1)
	}
}

func runWithOptions(opts *options) error {
	if opts.version {
		fmt.Printf("%s %s\n", appName, internal.GetVersion())
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: internal.ParseLogLevel(opts.loglevel),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.duration > 0 {
		tctx, tcancel := context.WithTimeout(ctx, time.Duration(opts.duration)*time.Second)
		defer tcancel()
		ctx = tctx
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Fprintf(os.Stderr, "\nreceived signal, cancelling...\n")
		cancel()
	}()

	if opts.demo {
		return runDemo(ctx, opts)
	}
	return runClient(ctx, opts)
}

func runClient(ctx context.Context, opts *options) error {
	var logfh io.Writer
	if opts.qlogfile == "-" {
		logfh = os.Stderr
	} else {
		fh, err := os.OpenFile(opts.qlogfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			slog.Error("failed to open qlog file", "error", err)
		}
		logfh = fh
		defer fh.Close()
	}

	useWebTransport := strings.HasPrefix(opts.addr, "https://")

	h := &vttHandler{
		addr:      opts.addr,
		namespace: []string{internal.Namespace},
		trackname: opts.trackname,
		logfh:     logfh,
	}
	return h.runClient(ctx, useWebTransport)
}

func dialQUIC(ctx context.Context, addr string) (moqtransport.Connection, error) {
	conn, err := quic.DialAddr(ctx, addr, &tls.Config{
		InsecureSkipVerify: true,
		NextProtos:         []string{"moq-00"},
	}, &quic.Config{
		EnableDatagrams: true,
	})
	if err != nil {
		return nil, err
	}
	return quicmoq.NewClient(conn), nil
}

func dialWebTransport(ctx context.Context, addr string) (moqtransport.Connection, error) {
	dialer := webtransport.Dialer{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}
	_, session, err := dialer.Dial(ctx, addr, nil)
	if err != nil {
		return nil, err
	}
	return webtransportmoq.NewClient(session), nil
}
