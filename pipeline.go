package emitorcsv

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

const defaultChunkSize = 1024

// Pipeline drives one document parse: it feeds the tracker from an XML
// token stream and drains the record buffer to the sinks after each read
// chunk of input has been consumed. Memory is bounded by the records one
// chunk produces, not by document size.
type Pipeline struct {
	buf     *RecordBuffer
	tracker *Tracker

	chunkSize   int
	filter      *Filter
	stats       *Stats
	trackerOpts []TrackerOption
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithChunkSize sets the feed-cycle size in bytes of consumed input.
func WithChunkSize(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithFilter installs a record filter; only matching records are sunk.
func WithFilter(f *Filter) PipelineOption {
	return func(p *Pipeline) {
		p.filter = f
	}
}

// WithStats installs a statistics collector observing every sunk record.
func WithStats(s *Stats) PipelineOption {
	return func(p *Pipeline) {
		p.stats = s
	}
}

// WithTrackerOptions forwards options to the pipeline's tracker.
func WithTrackerOptions(opts ...TrackerOption) PipelineOption {
	return func(p *Pipeline) {
		p.trackerOpts = append(p.trackerOpts, opts...)
	}
}

// NewPipeline creates a pipeline with its own buffer and tracker.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		buf:       NewRecordBuffer(),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tracker = NewTracker(p.buf, p.trackerOpts...)

	return p
}

// Tracker exposes the pipeline's tracker, mainly for inspecting drop
// counts after a run.
func (p *Pipeline) Tracker() *Tracker {
	return p.tracker
}

// Run parses one document from r, emitting records to the sinks. A syntax
// error is terminal and carries the input line it occurred on; records
// flushed before the failure are not retracted.
func (p *Pipeline) Run(r io.Reader, sinks ...Sink) error {
	cr := &chunkReader{r: r, size: p.chunkSize}
	dec := xml.NewDecoder(cr)

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return wrapParseError(err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, 0, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			p.tracker.OpenElement(tok.Name.Local, attrs)
		case xml.EndElement:
			p.tracker.CloseElement(tok.Name.Local)
		}

		if cr.chunkDone() {
			if err := p.flush(sinks); err != nil {
				return err
			}
		}
	}

	return p.flush(sinks)
}

func (p *Pipeline) flush(sinks []Sink) error {
	return p.buf.Drain(func(rec Record) error {
		if p.filter != nil {
			ok, err := p.filter.Match(rec)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		if p.stats != nil {
			p.stats.Observe(rec)
		}
		line := rec.Format()
		for _, s := range sinks {
			if err := s.Emit(line); err != nil {
				return err
			}
		}

		return nil
	})
}

func wrapParseError(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return errors.Wrapf(err, "malformed input at line %d", syn.Line)
	}

	return errors.WithStack(err)
}

// chunkReader counts consumed input so the driving loop can flush once per
// chunk of the underlying stream, mirroring a fixed-size read loop.
type chunkReader struct {
	r    io.Reader
	size int
	n    int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n

	return n, err
}

// chunkDone reports whether a full chunk was consumed since the last call,
// and starts the next cycle when it was.
func (c *chunkReader) chunkDone() bool {
	if c.n < c.size {
		return false
	}
	c.n = 0

	return true
}
