// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta_test

import (
	"encoding/binary"
	"testing"

	"github.com/hoa-le/exifmeta"

	qt "github.com/frankban/quicktest"
)

func minimalExifSegment() []byte {
	return []byte{
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'M', 'M',
		0x00, 0x2a,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x2a, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
}

// buildJPEG wraps the given segments into a JPEG byte stream.
func buildJPEG(segments ...[]byte) []byte {
	b := []byte{0xff, 0xd8}
	for _, seg := range segments {
		b = append(b, 0xff, 0xe1)
		b = binary.BigEndian.AppendUint16(b, uint16(len(seg)+2))
		b = append(b, seg...)
	}
	return append(b, 0xff, 0xd9)
}

func TestCanDecodeSegment(t *testing.T) {
	c := qt.New(t)

	c.Assert(exifmeta.CanDecodeSegment([]byte("Exif\x00\x00"), exifmeta.SegmentAPP1), qt.IsTrue)
	c.Assert(exifmeta.CanDecodeSegment([]byte("EXIF\x00\x00"), exifmeta.SegmentAPP1), qt.IsTrue)
	c.Assert(exifmeta.CanDecodeSegment([]byte("exif"), exifmeta.SegmentAPP1), qt.IsTrue)
	c.Assert(exifmeta.CanDecodeSegment([]byte("Exi"), exifmeta.SegmentAPP1), qt.IsFalse)
	c.Assert(exifmeta.CanDecodeSegment([]byte("http://ns.adobe.com/xap/1.0/\x00"), exifmeta.SegmentAPP1), qt.IsFalse)
	c.Assert(exifmeta.CanDecodeSegment([]byte("Exif\x00\x00"), exifmeta.SegmentType(0xed)), qt.IsFalse)
}

func TestDecodeJPEG(t *testing.T) {
	c := qt.New(t)

	jpg := buildJPEG(minimalExifSegment())

	md := exifmeta.NewMetadata()
	err := exifmeta.DecodeJPEG(jpg, md)
	c.Assert(err, qt.IsNil)

	ifd0 := md.GetDirectory(exifmeta.ExifIFD0)
	c.Assert(ifd0, qt.IsNotNil)
	v, ok := ifd0.GetInteger(0x0100)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 42)
}

func TestDecodeJPEGSkipsNonExifAPP1(t *testing.T) {
	c := qt.New(t)

	// An XMP APP1 segment before the Exif one must be skipped.
	xmp := []byte("http://ns.adobe.com/xap/1.0/\x00<x:xmpmeta/>")
	jpg := buildJPEG(xmp, minimalExifSegment())

	md := exifmeta.NewMetadata()
	err := exifmeta.DecodeJPEG(jpg, md)
	c.Assert(err, qt.IsNil)

	v, ok := md.GetDirectory(exifmeta.ExifIFD0).GetInteger(0x0100)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 42)
}

func TestDecodeJPEGWithoutExif(t *testing.T) {
	c := qt.New(t)

	md := exifmeta.NewMetadata()
	err := exifmeta.DecodeJPEG([]byte{0xff, 0xd8, 0xff, 0xd9}, md)
	c.Assert(err, qt.IsNil)
	c.Assert(len(md.Directories()), qt.Equals, 0)
}

func TestDecodeJPEGInvalidFormat(t *testing.T) {
	c := qt.New(t)

	md := exifmeta.NewMetadata()

	err := exifmeta.DecodeJPEG([]byte("not a jpeg"), md)
	c.Assert(exifmeta.IsInvalidFormat(err), qt.IsTrue)

	err = exifmeta.DecodeJPEG(nil, md)
	c.Assert(exifmeta.IsInvalidFormat(err), qt.IsTrue)

	// A segment length below 2 is structurally impossible.
	err = exifmeta.DecodeJPEG([]byte{0xff, 0xd8, 0xff, 0xe1, 0x00, 0x01}, md)
	c.Assert(exifmeta.IsInvalidFormat(err), qt.IsTrue)
}

func FuzzDecodeJPEG(f *testing.F) {
	f.Add(buildJPEG(minimalExifSegment()))
	f.Add([]byte{0xff, 0xd8, 0xff, 0xe1, 0x00, 0x04, 'E', 'x'})
	f.Add([]byte{0xff, 0xd8, 0xff, 0xd9})

	f.Fuzz(func(t *testing.T, b []byte) {
		exifmeta.DecodeJPEG(b, exifmeta.NewMetadata())
	})
}
