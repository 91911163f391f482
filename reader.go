// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// boundsError signals a read outside the byte region. It is recovered at the
// decode entry points and never escapes to the caller.
type boundsError struct {
	offset int
	count  int
	length int
}

func (e boundsError) Error() string {
	return fmt.Sprintf("attempt to read %d byte(s) at offset %d from a buffer of length %d", e.count, e.offset, e.length)
}

// Reader provides random access reads over a fixed byte region.
// Multi-byte values are interpreted using the current byte order, which the
// TIFF header selects and a makernote subtree may temporarily override.
// Note that this is not thread safe.
type Reader struct {
	b         []byte
	byteOrder binary.ByteOrder
}

// NewReader returns a Reader over b. The byte order defaults to big-endian
// until a TIFF byte order mark says otherwise.
func NewReader(b []byte) *Reader {
	return &Reader{
		b:         b,
		byteOrder: binary.BigEndian,
	}
}

// ByteOrder returns the reader's current byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.byteOrder
}

func (r *Reader) length() int {
	return len(r.b)
}

// validate panics with a boundsError unless n bytes at off lie inside the
// region. Written as off > len-n so that a huge n cannot overflow.
func (r *Reader) validate(off, n int) {
	if off < 0 || n < 0 || off > len(r.b)-n {
		panic(boundsError{offset: off, count: n, length: len(r.b)})
	}
}

func (r *Reader) read1(off int) uint8 {
	r.validate(off, 1)
	return r.b[off]
}

func (r *Reader) read1s(off int) int8 {
	return int8(r.read1(off))
}

func (r *Reader) read2(off int) uint16 {
	const n = 2
	r.validate(off, n)
	return r.byteOrder.Uint16(r.b[off : off+n])
}

func (r *Reader) read2s(off int) int16 {
	return int16(r.read2(off))
}

func (r *Reader) read4(off int) uint32 {
	const n = 4
	r.validate(off, n)
	return r.byteOrder.Uint32(r.b[off : off+n])
}

func (r *Reader) read4s(off int) int32 {
	return int32(r.read4(off))
}

func (r *Reader) read8(off int) uint64 {
	const n = 8
	r.validate(off, n)
	return r.byteOrder.Uint64(r.b[off : off+n])
}

func (r *Reader) read4f(off int) float32 {
	return math.Float32frombits(r.read4(off))
}

func (r *Reader) read8f(off int) float64 {
	return math.Float64frombits(r.read8(off))
}

// readBytes returns a copy of n bytes at off.
func (r *Reader) readBytes(off, n int) []byte {
	r.validate(off, n)
	b := make([]byte, n)
	copy(b, r.b[off:off+n])
	return b
}

// readBytesE is the non-panicking variant used where a bounds fault must stay
// local, e.g. the thumbnail copy after the main walk.
func (r *Reader) readBytesE(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(r.b)-n {
		return nil, boundsError{offset: off, count: n, length: len(r.b)}
	}
	b := make([]byte, n)
	copy(b, r.b[off:off+n])
	return b, nil
}

// readString reads exactly n bytes at off as an ISO 8859-1 string.
func (r *Reader) readString(off, n int) string {
	r.validate(off, n)
	return decodeLatin1(r.b[off : off+n])
}

// readNullTerminatedString reads up to max bytes at off, stopping at the
// first NUL byte. The NUL is not part of the result.
func (r *Reader) readNullTerminatedString(off, max int) string {
	var n int
	for n < max {
		if r.read1(off+n) == 0 {
			break
		}
		n++
	}
	return decodeLatin1(r.b[off : off+n])
}

func decodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// ISO 8859-1 maps every byte.
		return string(b)
	}
	return string(s)
}
