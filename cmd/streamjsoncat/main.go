// Command streamjsoncat exercises the whole streamjson stack end to
// end: it feeds a file or stdin through a streamio.SyncFeeder, drives a
// streamjson.Parser, and prints one NDJSON record per event. Grounded
// on the Cobra root-command layout in
// _examples/schmitthub-clawker/cmd/fawker/root.go and
// _examples/mmichie-intu/cmd/root.go, and the zerolog setup used
// throughout _examples/schmitthub-clawker.
package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hkruse/streamjson"
	"github.com/hkruse/streamjson/streamio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var maxDepth int
	var maxLexeme int
	var pretty bool

	cmd := &cobra.Command{
		Use:   "streamjsoncat [file]",
		Short: "Stream a JSON document through streamjson and print its events",
		Long: `streamjsoncat feeds a file (or stdin, with no argument) through the
streamjson event parser and prints one NDJSON record per event: its
kind, byte offset, and decoded value when the event carries one.

Usage:
  streamjsoncat testdata/doc.json
  cat testdata/doc.json | streamjsoncat`,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, maxDepth, maxLexeme, pretty)
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 1024, "maximum object/array nesting depth")
	cmd.Flags().IntVar(&maxLexeme, "max-lexeme", 0, "maximum string/number lexeme length (0 = unbounded)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "use zerolog's console writer instead of NDJSON logging")

	return cmd
}

func run(cmd *cobra.Command, args []string, maxDepth, maxLexeme int, pretty bool) error {
	runID := uuid.New().String()

	var out zerolog.Logger
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("run_id", runID).Logger()
	} else {
		out = zerolog.New(os.Stderr).With().Timestamp().Str("run_id", runID).Logger()
	}

	src := os.Stdin
	name := "<stdin>"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			out.Error().Err(err).Str("file", args[0]).Msg("open failed")
			return err
		}
		defer f.Close()
		src = f
		name = args[0]
	}

	cfg := streamjson.DefaultParserConfig()
	if maxDepth > 0 {
		cfg.MaxDepth = maxDepth
	}
	cfg.MaxLexemeLength = maxLexeme

	feeder := streamio.NewSyncFeeder(src, cfg)
	parser := streamjson.NewWithConfig(feeder, cfg)

	enc := json.NewEncoder(cmd.OutOrStdout())
	err := streamio.Drive(parser, feeder, func(ev streamjson.Event) error {
		return enc.Encode(eventRecord(parser, ev))
	})
	if err != nil {
		out.Error().Err(err).Str("file", name).Int64("offset", errOffset(err)).Msg("parse failed")
		return err
	}
	return nil
}

type record struct {
	Kind   string `json:"kind"`
	Offset int64  `json:"offset"`
	Value  any    `json:"value,omitempty"`
}

func eventRecord(p *streamjson.Parser, ev streamjson.Event) record {
	r := record{Kind: ev.Kind.String(), Offset: ev.Offset}
	switch ev.Kind {
	case streamjson.FieldName, streamjson.ValueString:
		if s, err := p.AsString(); err == nil {
			r.Value = s
		}
	case streamjson.ValueInt:
		if n, err := p.AsInt(64); err == nil {
			r.Value = n
		}
	case streamjson.ValueFloat:
		if f, err := p.AsFloat64(); err == nil {
			r.Value = f
		}
	}
	return r
}

func errOffset(err error) int64 {
	var pe *streamjson.ParseError
	if errors.As(err, &pe) {
		return pe.Offset
	}
	return -1
}
