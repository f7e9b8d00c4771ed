// Package streamjson implements a reactive, event-producing JSON
// parser fully compliant with RFC 8259. Parsing progress is decoupled
// from input availability: callers push bytes into a Feeder when they
// arrive and pull Events from a Parser when they're ready. The parser
// never blocks, never performs I/O itself, and never buffers the whole
// document — it supports streaming documents of arbitrary size at
// constant memory.
//
// A minimal in-memory use looks like:
//
//	feeder := streamio.NewSliceFeeder([]byte(`{"a":1}`))
//	p := streamjson.New(feeder)
//	for {
//		ev, err := p.Advance()
//		if err != nil {
//			log.Fatal(err)
//		}
//		if ev.Kind == streamjson.EndOfStream {
//			break
//		}
//		// inspect ev.Kind, and p.AsString()/p.AsInt()/... when it carries a value
//	}
//
// Concrete I/O adapters (blocking reader, context-cancellable reader,
// in-memory slice) live in the streamio subpackage. An optional
// converter that assembles a tagged value tree from the event stream,
// for compatibility testing against other JSON libraries, lives in
// streamtree. Neither is imported by this package.
package streamjson
