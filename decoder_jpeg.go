package exifmeta

import (
	"encoding/binary"
	"fmt"
	"strings"
)

var errInvalidFormat = fmt.Errorf("exifmeta: invalid format")

// IsInvalidFormat reports whether err signals a byte region that is not a
// JPEG at all.
func IsInvalidFormat(err error) bool {
	return err == errInvalidFormat
}

const (
	markerSOI  = 0xffd8
	markerAPP1 = 0xffe1
	markerSOS  = 0xffda
	markerEOI  = 0xffd9
)

// SegmentType is a JPEG segment marker type.
type SegmentType uint8

// SegmentAPP1 is the JPEG application segment carrying Exif data.
const SegmentAPP1 SegmentType = 0xE1

// CanDecodeSegment reports whether segment looks like an Exif APP1 payload.
func CanDecodeSegment(segment []byte, typ SegmentType) bool {
	return typ == SegmentAPP1 && len(segment) > 3 && strings.EqualFold(string(segment[:4]), "EXIF")
}

// DecodeJPEG scans the JPEG byte region b for an APP1 Exif segment and
// decodes it into md. It returns an error only when b is not a JPEG; a JPEG
// without Exif data decodes to an empty store.
func DecodeJPEG(b []byte, md *Metadata) error {
	if len(b) < 2 || binary.BigEndian.Uint16(b) != markerSOI {
		return errInvalidFormat
	}

	pos := 2
	for pos+2 <= len(b) {
		marker := binary.BigEndian.Uint16(b[pos:])
		pos += 2

		if marker == 0 {
			continue
		}
		if marker == markerSOS || marker == markerEOI {
			// Image data follows; no more metadata segments.
			return nil
		}

		if pos+2 > len(b) {
			return nil
		}
		// The 16-bit segment length includes its own 2 bytes.
		length := int(binary.BigEndian.Uint16(b[pos:]))
		if length < 2 {
			return errInvalidFormat
		}
		pos += 2
		length -= 2

		if pos+length > len(b) {
			length = len(b) - pos
		}

		if marker == markerAPP1 {
			segment := b[pos : pos+length]
			if CanDecodeSegment(segment, SegmentAPP1) {
				DecodeSegment(segment, md)
				return nil
			}
		}

		pos += length
	}

	return nil
}
