package emitorcsv

import (
	"fmt"
	"strings"
	"time"
)

// Header is the fixed CSV header line written once before any records.
const Header = "\"YYYY-MM-DD\",\"Hour\",\"Emitor.Tags\",\"Pkt_Value\"\n"

// Record is one flattened leaf measurement. The timestamp fields hold the
// wall-clock capture time, not anything from the document; the path is the
// emitter name followed by the tag-stack tokens, dot separated.
type Record struct {
	Year  int
	Month int
	Day   int
	Hour  int
	Path  string
	Value string
}

func newRecord(ts time.Time, emitor string, tags []string, value string) Record {
	var path strings.Builder
	path.WriteString(emitor)
	for _, tag := range tags {
		path.WriteByte('.')
		path.WriteString(tag)
	}

	return Record{
		Year:  ts.Year(),
		Month: int(ts.Month()),
		Day:   ts.Day(),
		Hour:  ts.Hour(),
		Path:  path.String(),
		Value: value,
	}
}

// Emitor returns the emitter component of the path, the part before the
// first dot.
func (r Record) Emitor() string {
	emitor, _, _ := strings.Cut(r.Path, ".")
	return emitor
}

// Format renders the record as one CSV line, newline terminated. Month and
// day are zero padded to two digits, the hour is an unpadded integer and
// every field is wrapped in double quotes. Embedded quotes and commas are
// not escaped; the vocabulary of the documents does not produce them.
// Formatting is a pure function of the record fields.
func (r Record) Format() string {
	return fmt.Sprintf("\"%d-%02d-%02d\",\"%d\",\"%s\",\"%s\"\n",
		r.Year, r.Month, r.Day, r.Hour, r.Path, r.Value)
}
