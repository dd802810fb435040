package cdcl

import (
	"bufio"
	"io"
	"strconv"
)

// TextDRATWriter is the default DRATWriter: it emits the standard
// whitespace-separated, zero-terminated DRAT text format to an
// io.Writer, covering the full add/delete record stream rather than a
// single empty-clause refutation message.
type TextDRATWriter struct {
	w   *bufio.Writer
	buf []byte
}

// NewTextDRATWriter wraps w as a DRATWriter. Close flushes buffered output.
func NewTextDRATWriter(w io.Writer) *TextDRATWriter {
	return &TextDRATWriter{w: bufio.NewWriter(w)}
}

// AddClause emits a clause-addition record.
func (d *TextDRATWriter) AddClause(lits []Lit) {
	d.writeLits(lits)
}

// DeleteClause emits a clause-deletion record with the 'd' prefix.
func (d *TextDRATWriter) DeleteClause(lits []Lit) {
	d.w.WriteString("d ")
	d.writeLits(lits)
}

// Empty emits the empty clause, signalling the UNSAT refutation.
func (d *TextDRATWriter) Empty() {
	d.w.WriteString("0\n")
}

// Close flushes any buffered output.
func (d *TextDRATWriter) Close() error {
	return d.w.Flush()
}

func (d *TextDRATWriter) writeLits(lits []Lit) {
	d.buf = d.buf[:0]
	for _, l := range lits {
		d.buf = strconv.AppendInt(d.buf, int64(l.Int()), 10)
		d.buf = append(d.buf, ' ')
	}
	d.buf = append(d.buf, '0', '\n')
	d.w.Write(d.buf)
}

// ChanDRATWriter streams DRAT records as strings on a channel. Useful
// when the caller wants to pipe the proof to a checker process without
// an intermediate file.
type ChanDRATWriter struct {
	Ch chan<- string
}

// NewChanDRATWriter returns a DRATWriter that publishes each record on ch.
func NewChanDRATWriter(ch chan<- string) *ChanDRATWriter {
	return &ChanDRATWriter{Ch: ch}
}

func (d *ChanDRATWriter) AddClause(lits []Lit)    { d.Ch <- formatLits(lits, false) }
func (d *ChanDRATWriter) DeleteClause(lits []Lit) { d.Ch <- formatLits(lits, true) }
func (d *ChanDRATWriter) Empty()                  { d.Ch <- "0" }
func (d *ChanDRATWriter) Close() error            { close(d.Ch); return nil }

func formatLits(lits []Lit, deleted bool) string {
	buf := make([]byte, 0, len(lits)*4+2)
	if deleted {
		buf = append(buf, 'd', ' ')
	}
	for _, l := range lits {
		buf = strconv.AppendInt(buf, int64(l.Int()), 10)
		buf = append(buf, ' ')
	}
	buf = append(buf, '0')
	return string(buf)
}

// NopDRATWriter discards every record; installed when DRAT is disabled.
type NopDRATWriter struct{}

func (NopDRATWriter) AddClause([]Lit)    {}
func (NopDRATWriter) DeleteClause([]Lit) {}
func (NopDRATWriter) Empty()             {}
func (NopDRATWriter) Close() error       { return nil }
