package sped

import (
	"strconv"
	"strings"
)

// Delimiter bounds every field of every record.
const Delimiter = "|"

// Record type codes shared by both layouts.
const (
	RecOpening     = "0000"
	RecBlock9Open  = "9001"
	RecTypeCount   = "9900"
	RecBlock9Close = "9990"
	RecClosing     = "9999"
)

// Writer assembles a block-structured SPED file. Every emitted record passes
// through Write, which updates the per-block counter, the global counter and
// the per-type histogram exactly once. Counts are never recomputed by
// re-parsing the buffer.
type Writer struct {
	sb          strings.Builder
	totalLines  int
	blockCounts map[byte]int
	typeCounts  map[string]int
	typeOrder   []string
}

func NewWriter() *Writer {
	return &Writer{
		blockCounts: make(map[byte]int),
		typeCounts:  make(map[string]int),
	}
}

// Write emits one record: |CODE|f1|f2|...|
func (w *Writer) Write(code string, fields ...string) {
	w.sb.WriteString(Delimiter)
	w.sb.WriteString(code)
	for _, f := range fields {
		w.sb.WriteString(Delimiter)
		w.sb.WriteString(f)
	}
	w.sb.WriteString(Delimiter)
	w.sb.WriteString("\n")

	w.totalLines++
	w.blockCounts[code[0]]++
	if _, seen := w.typeCounts[code]; !seen {
		w.typeOrder = append(w.typeOrder, code)
	}
	w.typeCounts[code]++
}

// WriteBlockClose emits the closing record of a block carrying the block's
// own line count, including the opening record and the closer itself.
func (w *Writer) WriteBlockClose(code string) {
	count := w.blockCounts[code[0]] + 1
	w.Write(code, strconv.Itoa(count))
}

// WriteTrailer emits the whole closing section: one 9900 histogram row per
// record type (covering the 9-block records themselves), the 9990 block
// closer and the final 9999 record with the grand total line count.
func (w *Writer) WriteTrailer() {
	// snapshot before the trailer rows mutate the counters
	types := make([]string, len(w.typeOrder))
	copy(types, w.typeOrder)
	counts := make(map[string]int, len(w.typeCounts))
	for code, n := range w.typeCounts {
		counts[code] = n
	}

	// the trailer itself adds one 9900 row per type plus rows for 9900,
	// 9990 and 9999
	counts[RecTypeCount] = len(types) + 3
	counts[RecBlock9Close] = 1
	counts[RecClosing] = 1
	types = append(types, RecTypeCount, RecBlock9Close, RecClosing)

	for _, code := range types {
		w.Write(RecTypeCount, code, strconv.Itoa(counts[code]))
	}

	// 9990 counts every block-9 line including itself and the forthcoming
	// 9999 record
	w.Write(RecBlock9Close, strconv.Itoa(w.blockCounts['9']+2))

	// 9999 counts every line in the file including itself
	w.Write(RecClosing, strconv.Itoa(w.totalLines+1))
}

// String returns the assembled content.
func (w *Writer) String() string {
	return w.sb.String()
}

// TotalLines returns the number of records emitted so far.
func (w *Writer) TotalLines() int {
	return w.totalLines
}
