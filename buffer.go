package emitorcsv

import "github.com/pkg/errors"

const bufferGrowBy = 32

// RecordBuffer is the append-only output sequence records accumulate in
// between flushes. The driving loop owns it; the tracker only appends.
// Backing storage grows by a fixed increment, so any number of leaf
// elements in one feed cycle is absorbed by growing rather than failing.
type RecordBuffer struct {
	recs []Record
}

func NewRecordBuffer() *RecordBuffer {
	return &RecordBuffer{recs: make([]Record, 0, bufferGrowBy)}
}

func (b *RecordBuffer) Append(rec Record) {
	if len(b.recs) == cap(b.recs) {
		grown := make([]Record, len(b.recs), cap(b.recs)+bufferGrowBy)
		copy(grown, b.recs)
		b.recs = grown
	}
	b.recs = append(b.recs, rec)
}

func (b *RecordBuffer) Len() int {
	return len(b.recs)
}

// Drain hands every buffered record to emit in FIFO order and clears the
// buffer. The buffer is cleared even when emit fails part way through:
// records already delivered are not retracted and the run is expected to
// terminate on the returned error.
func (b *RecordBuffer) Drain(emit func(Record) error) error {
	defer func() {
		b.recs = b.recs[:0]
	}()
	for _, rec := range b.recs {
		if err := emit(rec); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
