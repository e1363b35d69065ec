package emitorcsv

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWriterSink(t *testing.T) {
	var out bytes.Buffer
	sink := NewWriterSink(&out)
	require.NoError(t, sink.Emit("\"a\"\n"))
	require.NoError(t, sink.Emit("\"b\"\n"))
	require.NoError(t, sink.Close())
	require.Equal(t, "\"a\"\n\"b\"\n", out.String())
}

func TestMultiSink(t *testing.T) {
	var first, second bytes.Buffer
	s1 := NewWriterSink(&first)
	s2 := NewWriterSink(&second)
	multi := MultiSink{s1, s2}

	require.NoError(t, multi.Emit("line\n"))
	require.NoError(t, s1.Close())
	require.NoError(t, s2.Close())
	require.Equal(t, first.String(), second.String())
	require.Equal(t, "line\n", first.String())
}

type failingSink struct{ err error }

func (f failingSink) Emit(string) error { return f.err }

func TestMultiSinkStopsOnError(t *testing.T) {
	sinkErr := errors.New("disk full")
	var out bytes.Buffer
	tail := NewWriterSink(&out)
	multi := MultiSink{failingSink{err: sinkErr}, tail}

	require.ErrorIs(t, multi.Emit("line\n"), sinkErr)
	require.NoError(t, tail.Close())
	require.Empty(t, out.String())
}

func TestCodecForPath(t *testing.T) {
	cases := map[string]Codec{
		"wyniki.csv":     CodecNone,
		"wyniki.csv.gz":  CodecGzip,
		"wyniki.csv.zst": CodecZstd,
		"out.ZSTD":       CodecZstd,
		"wyniki.csv.lz4": CodecLZ4,
		"wyniki":         CodecNone,
	}
	for path, want := range cases {
		require.Equalf(t, want, CodecForPath(path), "CodecForPath(%q)", path)
	}
}

func TestCompressedSinkRoundTrip(t *testing.T) {
	const payload = "\"2024-03-07\",\"9\",\"E1.status.T1.auto\",\"7\"\n"

	decompress := map[Codec]func(io.Reader) (io.Reader, error){
		CodecGzip: func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		},
		CodecZstd: func(r io.Reader) (io.Reader, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		},
		CodecLZ4: func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		},
	}

	for codec, open := range decompress {
		t.Run(codec.String(), func(t *testing.T) {
			var out bytes.Buffer
			sink, err := NewCompressedSink(&out, codec)
			require.NoError(t, err)
			require.NoError(t, sink.Emit(payload))
			require.NoError(t, CloseSink(sink))

			r, err := open(&out)
			require.NoError(t, err)
			plain, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, payload, string(plain))
		})
	}
}

func TestNewCompressedSinkNone(t *testing.T) {
	var out bytes.Buffer
	sink, err := NewCompressedSink(&out, CodecNone)
	require.NoError(t, err)
	require.NoError(t, sink.Emit("x\n"))
	require.NoError(t, CloseSink(sink))
	require.Equal(t, "x\n", out.String())
}
