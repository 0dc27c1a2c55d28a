// File: core/buffer/strings.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Length-prefixed string fields. The prefix is a little-endian unsigned
// integer of a selectable width (32-bit by default) counting CODE UNITS,
// not bytes. Byte-sized code units go to the wire verbatim; 16- and
// 32-bit code units are little-endian each, so mixed-endian hosts agree
// on code-unit values rather than raw byte order.

package buffer

import "math"

// DefaultPrefix is the length-prefix width used by the non-N variants.
const DefaultPrefix = P32

// maxLength is the largest code-unit count the prefix width can carry.
func (w PrefixWidth) maxLength() int {
	switch w {
	case P8:
		return math.MaxUint8
	case P16:
		return math.MaxUint16
	case P64:
		return math.MaxInt
	default:
		return math.MaxUint32
	}
}

// writePrefix appends a length prefix. Space and representability must
// have been checked by the caller.
func (sb *SerializeBuffer) writePrefix(w PrefixWidth, length int) {
	switch w {
	case P8:
		sb.WriteUint8(uint8(length))
	case P16:
		sb.WriteUint16(uint16(length))
	case P64:
		sb.WriteUint64(uint64(length))
	default:
		sb.WriteUint32(uint32(length))
	}
}

// peekPrefix reads a length prefix without consuming it.
func (sb *SerializeBuffer) peekPrefix(w PrefixWidth) (int, bool) {
	switch w {
	case P8:
		v, ok := sb.PeekUint8()
		return int(v), ok
	case P16:
		v, ok := sb.PeekUint16()
		return int(v), ok
	case P64:
		v, ok := sb.PeekUint64()
		if ok && v > math.MaxInt/8 {
			// no buffer holds a payload this long: a short read
			sb.fail = true
			return 0, false
		}
		return int(v), ok
	default:
		v, ok := sb.PeekUint32()
		return int(v), ok
	}
}

// WriteString appends s with the default 32-bit length prefix.
func (sb *SerializeBuffer) WriteString(s string) bool {
	return sb.WriteStringN(s, DefaultPrefix)
}

// WriteStringN appends s with a length prefix of the given width. The
// prefix counts bytes (the code-unit size of a Go string), all or
// nothing. A length the prefix width cannot represent fails rather
// than truncate: a short prefix over a full payload would desync every
// read after it.
func (sb *SerializeBuffer) WriteStringN(s string, w PrefixWidth) bool {
	if len(s) > w.maxLength() || int(w)+len(s) > sb.AvailableSpace() {
		sb.fail = true
		return false
	}
	sb.writePrefix(w, len(s))
	copy(sb.buf[sb.posWrite:], s)
	sb.posWrite += len(s)
	return true
}

// ReadString consumes a string with the default 32-bit length prefix.
func (sb *SerializeBuffer) ReadString() (string, bool) {
	return sb.ReadStringN(DefaultPrefix)
}

// ReadStringN consumes a length-prefixed string. On a short payload the
// read cursor does not move and the fail latch is set.
func (sb *SerializeBuffer) ReadStringN(w PrefixWidth) (string, bool) {
	length, ok := sb.peekPrefix(w)
	if !ok {
		return "", false
	}
	if int(w)+length > sb.UsedSpace() {
		sb.fail = true
		return "", false
	}
	sb.posRead += int(w)
	s := string(sb.buf[sb.posRead : sb.posRead+length])
	sb.posRead += length
	return s, true
}

// PeekString reads a string without consuming it.
func (sb *SerializeBuffer) PeekString() (string, bool) {
	return sb.PeekStringN(DefaultPrefix)
}

// PeekStringN reads a length-prefixed string without consuming it.
func (sb *SerializeBuffer) PeekStringN(w PrefixWidth) (string, bool) {
	prev := sb.posRead
	s, ok := sb.ReadStringN(w)
	if !ok {
		return "", false
	}
	sb.posRead = prev
	return s, true
}

// WriteUTF16 appends UTF-16 code units with the default prefix.
func (sb *SerializeBuffer) WriteUTF16(u []uint16) bool {
	return sb.WriteUTF16N(u, DefaultPrefix)
}

// WriteUTF16N appends UTF-16 code units, each little-endian, with a
// length prefix counting code units. Fails on a count the prefix width
// cannot represent.
func (sb *SerializeBuffer) WriteUTF16N(u []uint16, w PrefixWidth) bool {
	if len(u) > w.maxLength() || int(w)+2*len(u) > sb.AvailableSpace() {
		sb.fail = true
		return false
	}
	sb.writePrefix(w, len(u))
	for _, cu := range u {
		sb.WriteUint16(cu)
	}
	return true
}

// ReadUTF16 consumes UTF-16 code units with the default prefix.
func (sb *SerializeBuffer) ReadUTF16() ([]uint16, bool) {
	return sb.ReadUTF16N(DefaultPrefix)
}

// ReadUTF16N consumes length-prefixed UTF-16 code units.
func (sb *SerializeBuffer) ReadUTF16N(w PrefixWidth) ([]uint16, bool) {
	length, ok := sb.peekPrefix(w)
	if !ok {
		return nil, false
	}
	if int(w)+2*length > sb.UsedSpace() {
		sb.fail = true
		return nil, false
	}
	sb.posRead += int(w)
	out := make([]uint16, length)
	for i := range out {
		out[i], _ = sb.ReadUint16()
	}
	return out, true
}

// WriteUTF32 appends UTF-32 code units with the default prefix.
func (sb *SerializeBuffer) WriteUTF32(u []rune) bool {
	return sb.WriteUTF32N(u, DefaultPrefix)
}

// WriteUTF32N appends UTF-32 code units, each little-endian, with a
// length prefix counting code units. Fails on a count the prefix width
// cannot represent.
func (sb *SerializeBuffer) WriteUTF32N(u []rune, w PrefixWidth) bool {
	if len(u) > w.maxLength() || int(w)+4*len(u) > sb.AvailableSpace() {
		sb.fail = true
		return false
	}
	sb.writePrefix(w, len(u))
	for _, cu := range u {
		sb.WriteUint32(uint32(cu))
	}
	return true
}

// ReadUTF32 consumes UTF-32 code units with the default prefix.
func (sb *SerializeBuffer) ReadUTF32() ([]rune, bool) {
	return sb.ReadUTF32N(DefaultPrefix)
}

// ReadUTF32N consumes length-prefixed UTF-32 code units.
func (sb *SerializeBuffer) ReadUTF32N(w PrefixWidth) ([]rune, bool) {
	length, ok := sb.peekPrefix(w)
	if !ok {
		return nil, false
	}
	if int(w)+4*length > sb.UsedSpace() {
		sb.fail = true
		return nil, false
	}
	sb.posRead += int(w)
	out := make([]rune, length)
	for i := range out {
		v, _ := sb.ReadUint32()
		out[i] = rune(v)
	}
	return out, true
}

// WriteCString appends the bytes of p up to (not including) the first
// NUL, in the same on-wire format as WriteString.
func (sb *SerializeBuffer) WriteCString(p []byte) bool {
	n := 0
	for n < len(p) && p[n] != 0 {
		n++
	}
	return sb.WriteStringN(string(p[:n]), DefaultPrefix)
}

// ReadCString consumes a length-prefixed string into dst and appends a
// NUL terminator. dst must hold at least length+1 bytes; undersized
// destinations are a caller error and panic. Returns the code-unit
// count.
func (sb *SerializeBuffer) ReadCString(dst []byte) (int, bool) {
	length, ok := sb.peekPrefix(DefaultPrefix)
	if !ok {
		return 0, false
	}
	if int(DefaultPrefix)+length > sb.UsedSpace() {
		sb.fail = true
		return 0, false
	}
	sb.posRead += int(DefaultPrefix)
	copy(dst[:length], sb.buf[sb.posRead:])
	dst[length] = 0
	sb.posRead += length
	return length, true
}
