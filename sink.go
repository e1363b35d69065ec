package emitorcsv

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Sink receives formatted record lines in document order. Delivery
// guarantees past the Emit call are the sink's concern, not the core's.
type Sink interface {
	Emit(record string) error
}

// Codec names a compression scheme for file sinks.
type Codec int

const (
	CodecNone Codec = iota
	CodecGzip
	CodecZstd
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecGzip:
		return "gzip"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CodecForPath picks the output codec from a file name extension.
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CodecGzip
	case ".zst", ".zstd":
		return CodecZstd
	case ".lz4":
		return CodecLZ4
	default:
		return CodecNone
	}
}

// WriterSink writes records to an io.Writer through a buffer. Call Close
// when the run ends to flush the buffer.
type WriterSink struct {
	w *bufio.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) Emit(record string) error {
	_, err := s.w.WriteString(record)
	return errors.WithStack(err)
}

func (s *WriterSink) Close() error {
	return errors.WithStack(s.w.Flush())
}

// CompressedSink writes records through a streaming compressor. Close
// finishes the compressed frame; without it the output is unreadable.
type CompressedSink struct {
	wc io.WriteCloser
}

// NewCompressedSink wraps w with the given codec. CodecNone falls back to a
// plain WriterSink.
func NewCompressedSink(w io.Writer, codec Codec) (Sink, error) {
	switch codec {
	case CodecNone:
		return NewWriterSink(w), nil
	case CodecGzip:
		return &CompressedSink{wc: gzip.NewWriter(w)}, nil
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &CompressedSink{wc: zw}, nil
	case CodecLZ4:
		return &CompressedSink{wc: lz4.NewWriter(w)}, nil
	default:
		return nil, errors.Errorf("unknown codec %d", codec)
	}
}

func (s *CompressedSink) Emit(record string) error {
	_, err := io.WriteString(s.wc, record)
	return errors.WithStack(err)
}

func (s *CompressedSink) Close() error {
	return errors.WithStack(s.wc.Close())
}

// MultiSink fans every record out to all member sinks in order. The
// original program wrote each record to stdout and the CSV file alike.
type MultiSink []Sink

func (m MultiSink) Emit(record string) error {
	for _, s := range m {
		if err := s.Emit(record); err != nil {
			return err
		}
	}
	return nil
}

// CloseSink closes s when it needs closing. Sinks over plain writers that
// the caller flushes itself pass through unharmed.
func CloseSink(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
