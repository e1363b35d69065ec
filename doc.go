// Package emitorcsv flattens streamed emitor measurement documents into
// CSV records.
//
// The documents are nested markup: an emitor element names the emission
// source, group elements (status, parametr, stezenie) open a measurement
// block, and leaf elements (auto, reka, wartosc, ...) carry one point
// value in their pkt attribute. Each leaf becomes one CSV line holding the
// wall-clock capture time, the dotted path from emitter to leaf, and the
// value.
//
// The core is the Tracker, a state machine driven by element open/close
// events; the Pipeline feeds it from an XML token stream and drains
// finished records to one or more sinks after each chunk of input:
//
//	pipe := emitorcsv.NewPipeline()
//	sink := emitorcsv.NewWriterSink(os.Stdout)
//	_ = sink.Emit(emitorcsv.Header)
//	if err := pipe.Run(input, sink); err != nil {
//		log.Fatalf("%+v", err)
//	}
//	_ = sink.Close()
//
// Sinks can compress on the fly (gzip, zstd, lz4), records can be filtered
// with a govaluate expression, and a Stats collector aggregates per-path
// counts keyed by xxHash64 of the path.
package emitorcsv
