// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

// Package exifmeta decodes Exif/TIFF metadata from an in-memory byte region
// into a Metadata store of named, typed tag directories: IFD0, the Exif
// SubIFD, the interoperability and GPS directories, the thumbnail directory
// and one of the many camera makernote directories.
//
// Malformed input never fails a decode; structural faults are recorded as
// error strings on the directory being populated and the walk carries on
// with whatever remains readable.
package exifmeta

// An Exif segment must be longer than this: "Exif\0\0" preamble plus the
// 8-byte TIFF header.
const minSegmentLength = 14

// tiffHeaderStartOffset is where the TIFF header sits inside a JPEG APP1
// Exif segment, after the "Exif\0\0" preamble.
const tiffHeaderStartOffset = 6

const exifPreamble = "Exif\x00\x00"

// DecodeSegment decodes a JPEG APP1 Exif segment payload (the bytes after
// the APP1 marker and length, starting with "Exif\0\0") into md.
func DecodeSegment(segment []byte, md *Metadata) {
	r := NewReader(segment)

	// Header faults are reported on the SubIFD directory.
	dir := md.GetOrCreateDirectory(ExifSubIFD)

	if r.length() <= minSegmentLength {
		dir.AddError("Exif data segment must contain at least 14 bytes")
		return
	}

	defer catchTruncated(dir)

	if r.readString(0, 6) != exifPreamble {
		dir.AddError("Exif data segment doesn't begin with 'Exif'")
		return
	}

	dec := &tiffDecoder{r: r, md: md}
	dec.decode(md.GetOrCreateDirectory(ExifIFD0), tiffHeaderStartOffset)
}

// DecodeTIFF decodes a bare TIFF/RAW stream, with the TIFF header at offset
// zero, into md.
func DecodeTIFF(r *Reader, md *Metadata) {
	dir := md.GetOrCreateDirectory(ExifIFD0)

	defer catchTruncated(dir)

	dec := &tiffDecoder{r: r, md: md}
	dec.decode(dir, 0)
}

// catchTruncated converts a reader bounds fault that escaped the walk into a
// single error on dir. Deliberate: deep reads may run off the end of a
// truncated segment at any point, and the values stored so far are kept.
func catchTruncated(dir *Directory) {
	switch rv := recover().(type) {
	case nil:
	case boundsError:
		dir.AddError("Exif data segment ended prematurely")
	default:
		panic(rv)
	}
}
