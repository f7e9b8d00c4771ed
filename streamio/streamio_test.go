package streamio_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkruse/streamjson"
	"github.com/hkruse/streamjson/streamio"
)

func TestSliceFeeder_DrivesToEndOfStream(t *testing.T) {
	feeder := streamio.NewStringFeeder(`{"a":1}`)
	p := streamjson.New(feeder)

	var kinds []string
	for {
		ev, err := p.Advance()
		require.NoError(t, err)
		if ev.Kind == streamjson.EndOfStream {
			break
		}
		kinds = append(kinds, ev.Kind.String())
	}
	assert.Equal(t, []string{"StartObject", "FieldName", "ValueInt", "EndObject"}, kinds)
}

func TestSyncFeeder_DriveReadsThroughSmallReader(t *testing.T) {
	// A one-byte reader forces Drive through several short reads rather
	// than handing the whole document to the parser in one push.
	r := iotest.OneByteReader(strings.NewReader(`[1,2,3,"four",{"five":5}]`))
	cfg := streamjson.DefaultParserConfig()
	feeder := streamio.NewSyncFeeder(r, cfg)
	p := streamjson.NewWithConfig(feeder, cfg)

	var kinds []string
	err := streamio.Drive(p, feeder, func(ev streamjson.Event) error {
		kinds = append(kinds, ev.Kind.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"StartArray", "ValueInt", "ValueInt", "ValueInt", "ValueString",
		"StartObject", "FieldName", "ValueInt", "EndObject",
		"EndArray", "EndOfStream",
	}, kinds)
}

func TestSyncFeeder_DrivePropagatesSyntaxError(t *testing.T) {
	r := strings.NewReader(`[01]`)
	cfg := streamjson.DefaultParserConfig()
	feeder := streamio.NewSyncFeeder(r, cfg)
	p := streamjson.NewWithConfig(feeder, cfg)

	err := streamio.Drive(p, feeder, func(streamjson.Event) error { return nil })
	require.Error(t, err)
}

func TestAsyncFeeder_DriveAsyncReadsToCompletion(t *testing.T) {
	r := strings.NewReader(`{"ok":true,"items":[1,2,3]}`)
	cfg := streamjson.DefaultParserConfig()
	feeder := streamio.NewAsyncFeeder(r, cfg, 4)
	defer feeder.Close()
	p := streamjson.NewWithConfig(feeder, cfg)

	var kinds []string
	ctx := context.Background()
	err := streamio.DriveAsync(ctx, p, feeder, func(ev streamjson.Event) error {
		kinds = append(kinds, ev.Kind.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"StartObject",
		"FieldName", "ValueTrue",
		"FieldName", "StartArray", "ValueInt", "ValueInt", "ValueInt", "EndArray",
		"EndObject",
		"EndOfStream",
	}, kinds)
}

// A cancelled context must abort Refill without delivering a partial
// chunk or corrupting the feeder for a later, successful Refill.
func TestAsyncFeeder_RefillRespectsContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	cfg := streamjson.DefaultParserConfig()
	feeder := streamio.NewAsyncFeeder(pr, cfg, 16)
	defer feeder.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := feeder.Refill(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	go func() {
		time.Sleep(5 * time.Millisecond)
		pw.Write([]byte(`1`))
		pw.Close()
	}()
	err = feeder.Refill(context.Background())
	require.NoError(t, err)
	assert.True(t, feeder.HasNext())
}
