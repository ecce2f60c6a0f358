package protocol

import (
	"encoding/binary"
	"math"

	"peuchre/internal/domain"
)

// writer accumulates a frame. The length prefix is patched in by frame().
type writer struct {
	buf []byte
	err error
}

func newWriter(id MessageID) *writer {
	w := &writer{buf: make([]byte, 4, 64)}
	w.int32(int32(id))
	return w
}

func (w *writer) int32(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) bool(v bool) {
	if v {
		w.int32(1)
		return
	}
	w.int32(0)
}

func (w *writer) string(s string) {
	if len(s) > math.MaxInt32 {
		w.err = ErrStringTooLarge
		return
	}
	w.int32(int32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) card(c domain.Card) {
	w.int32(c.Value)
	w.int32(int32(c.Suit))
}

func (w *writer) raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// frame appends the trailer and fills in the length prefix.
func (w *writer) frame() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf = append(w.buf, TAIL1, TAIL2)
	binary.BigEndian.PutUint32(w.buf[0:4], uint32(len(w.buf)-4))
	return w.buf, nil
}

// reader walks the payload of a frame whose trailer has already been checked.
type reader struct {
	id  MessageID
	buf []byte
	off int
	err error
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) int32(field string) int32 {
	if r.err != nil {
		return 0
	}
	if r.remaining() < 4 {
		r.err = malformed(r.id, "truncated at %s", field)
		return 0
	}
	v := int32(binary.BigEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *reader) bool(field string) bool {
	return r.int32(field) != 0
}

func (r *reader) string(field string) string {
	n := r.int32(field)
	if r.err != nil {
		return ""
	}
	if n < 0 || int(n) > r.remaining() {
		r.err = malformed(r.id, "%s length %d exceeds remaining %d bytes", field, n, r.remaining())
		return ""
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s
}

func (r *reader) card(field string) domain.Card {
	v := r.int32(field)
	s := r.int32(field)
	return domain.Card{Value: v, Suit: domain.Suit(s)}
}

func (r *reader) rest() []byte {
	if r.err != nil {
		return nil
	}
	out := append([]byte{}, r.buf[r.off:]...)
	r.off = len(r.buf)
	return out
}

// done fails the read if payload bytes are left over.
func (r *reader) done() error {
	if r.err != nil {
		return r.err
	}
	if r.remaining() != 0 {
		return malformed(r.id, "%d trailing bytes", r.remaining())
	}
	return nil
}
