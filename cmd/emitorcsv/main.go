package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"emitorcsv"
)

func main() {
	var (
		inPath    = flag.String("in", "example.xml", "input XML document")
		outPath   = flag.String("out", "wyniki.csv", "output file; .gz/.zst/.lz4 extensions enable compression")
		filterStr = flag.String("filter", "", "record filter expression, e.g. 'pkt > 5'")
		chunk     = flag.Int("chunk", 1024, "input feed-cycle size in bytes")
		stats     = flag.Bool("stats", false, "print per-path record counts to stderr")
		quiet     = flag.Bool("quiet", false, "do not echo records to stdout")
	)
	flag.Parse()

	if err := run(*inPath, *outPath, *filterStr, *chunk, *stats, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "emitorcsv: %+v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, filterStr string, chunk int, printStats, quiet bool) error {
	in, err := os.Open(inPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(outPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		_ = out.Close()
	}()

	fileSink, err := emitorcsv.NewCompressedSink(out, emitorcsv.CodecForPath(outPath))
	if err != nil {
		return err
	}

	sinks := emitorcsv.MultiSink{fileSink}
	var stdoutSink *emitorcsv.WriterSink
	if !quiet {
		stdoutSink = emitorcsv.NewWriterSink(os.Stdout)
		sinks = append(sinks, stdoutSink)
	}

	opts := []emitorcsv.PipelineOption{emitorcsv.WithChunkSize(chunk)}
	if filterStr != "" {
		filter, err := emitorcsv.NewFilter(filterStr)
		if err != nil {
			return err
		}
		opts = append(opts, emitorcsv.WithFilter(filter))
	}
	var collector *emitorcsv.Stats
	if printStats {
		collector = emitorcsv.NewStats()
		opts = append(opts, emitorcsv.WithStats(collector))
	}

	if err := sinks.Emit(emitorcsv.Header); err != nil {
		return err
	}

	pipe := emitorcsv.NewPipeline(opts...)
	if err := pipe.Run(in, sinks); err != nil {
		return err
	}

	if err := emitorcsv.CloseSink(fileSink); err != nil {
		return err
	}
	if stdoutSink != nil {
		if err := stdoutSink.Close(); err != nil {
			return err
		}
	}

	if printStats {
		fmt.Fprintf(os.Stderr, "%d records across %d paths\n",
			collector.Total(), len(collector.Paths()))
		for _, pc := range collector.Paths() {
			fmt.Fprintf(os.Stderr, "  %s: %d\n", pc.Path, pc.Count)
		}
	}
	if dropped := pipe.Tracker().Dropped(); dropped > 0 {
		fmt.Fprintf(os.Stderr, "%d records dropped by overflow policy\n", dropped)
	}

	return nil
}
