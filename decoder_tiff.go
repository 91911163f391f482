// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding/binary"
	"fmt"
)

// tiffFormat is one of the twelve TIFF tag data types.
type tiffFormat int

const (
	fmtByte      tiffFormat = 1
	fmtString    tiffFormat = 2
	fmtUShort    tiffFormat = 3
	fmtULong     tiffFormat = 4
	fmtURational tiffFormat = 5
	fmtSByte     tiffFormat = 6
	fmtUndefined tiffFormat = 7
	fmtSShort    tiffFormat = 8
	fmtSLong     tiffFormat = 9
	fmtSRational tiffFormat = 10
	fmtSingle    tiffFormat = 11
	fmtDouble    tiffFormat = 12
)

const maxFormatCode = 12

// Bytes per component for each format code. Index 0 is reserved.
var bytesPerFormat = [maxFormatCode + 1]int{0, 1, 1, 2, 4, 8, 1, 1, 2, 4, 8, 4, 8}

const (
	standardTIFFMarker     = 0x002A
	olympusRawTIFFMarker   = 0x4F52 // ORF
	panasonicRawTIFFMarker = 0x0055 // RW2
)

type tiffDecoder struct {
	r  *Reader
	md *Metadata
}

// decode validates the TIFF header at tiffHeaderOffset, walks the IFD chain
// starting at the first-IFD pointer, and finally copies out the thumbnail
// bytes if the walk produced a complete thumbnail specification.
func (d *tiffDecoder) decode(dir *Directory, tiffHeaderOffset int) {
	// This should be either "MM" or "II".
	byteOrderIdentifier := d.r.readString(tiffHeaderOffset, 2)

	switch byteOrderIdentifier {
	case "MM":
		d.r.byteOrder = binary.BigEndian
	case "II":
		d.r.byteOrder = binary.LittleEndian
	default:
		dir.AddError("Unclear distinction between Motorola/Intel byte ordering: " + byteOrderIdentifier)
		return
	}

	tiffMarker := int(d.r.read2(tiffHeaderOffset + 2))
	if tiffMarker != standardTIFFMarker && tiffMarker != olympusRawTIFFMarker && tiffMarker != panasonicRawTIFFMarker {
		dir.AddError(fmt.Sprintf("Unexpected TIFF marker after byte order identifier: 0x%x", tiffMarker))
		return
	}

	firstIfdOffset := int(d.r.read4s(tiffHeaderOffset+4)) + tiffHeaderOffset

	if firstIfdOffset >= d.r.length()-1 {
		dir.AddError("First Exif directory offset is beyond end of Exif data segment")
		// First directory normally starts 14 bytes in. Try it and catch
		// another error in the worst case.
		firstIfdOffset = 14
	}

	visited := make(map[int]bool)

	d.processIFD(dir, visited, firstIfdOffset, tiffHeaderOffset)

	// After the walk, the thumbnail directory may carry a complete
	// offset/length specification for the thumbnail bytes.
	thumbnail := d.md.GetDirectory(ExifThumbnail)
	if thumbnail != nil && thumbnail.ContainsTag(TagThumbnailCompression) {
		offset, hasOffset := thumbnail.GetInteger(TagThumbnailOffset)
		length, hasLength := thumbnail.GetInteger(TagThumbnailLength)
		if hasOffset && hasLength {
			b, err := d.r.readBytesE(tiffHeaderOffset+offset, length)
			if err != nil {
				dir.AddError("Invalid thumbnail data specification: " + err.Error())
			} else {
				thumbnail.SetThumbnailData(b)
			}
		}
	}
}

// processIFD walks one TIFF IFD, storing tag values in dir.
//
// IFD layout: a 2-byte tag count, then count 12-byte entries, then an
// optional 4-byte pointer to a follower IFD. Each entry holds a 2-byte tag
// id, a 2-byte format code, a 4-byte component count, and 4 bytes that carry
// the value inline when it fits or an offset to it when it does not.
func (d *tiffDecoder) processIFD(dir *Directory, visited map[int]bool, ifdOffset, tiffHeaderOffset int) {
	// Cyclic or repeated directory structures exist in the wild; enter each
	// offset at most once.
	if visited[ifdOffset] {
		return
	}
	visited[ifdOffset] = true

	if ifdOffset >= d.r.length() || ifdOffset < 0 {
		dir.AddError("Ignored IFD marked to start outside data segment")
		return
	}

	dirTagCount := int(d.r.read2(ifdOffset))

	dirLength := 2 + 12*dirTagCount + 4
	if dirLength+ifdOffset > d.r.length() {
		dir.AddError("Illegally sized IFD")
		return
	}

	for tagNumber := 0; tagNumber < dirTagCount; tagNumber++ {
		tagOffset := entryOffset(ifdOffset, tagNumber)

		tagType := int(d.r.read2(tagOffset))

		formatCode := tiffFormat(d.r.read2(tagOffset + 2))
		if formatCode < 1 || formatCode > maxFormatCode {
			// Subsequent entries are presumed misaligned; processing them
			// would generate rubbish until the walk runs out of bounds.
			dir.AddError(fmt.Sprintf("Invalid TIFF tag format code: %d", formatCode))
			return
		}

		componentCount := int(d.r.read4s(tagOffset + 4))
		if componentCount < 0 {
			dir.AddError("Negative TIFF tag component count")
			continue
		}

		byteCount := componentCount * bytesPerFormat[formatCode]

		var tagValueOffset int
		if byteCount > 4 {
			// The entry holds an offset. Offsets are relative to the TIFF
			// header, except in makernote framings that pass their own base.
			offsetVal := int(d.r.read4s(tagOffset + 8))
			if offsetVal+byteCount > d.r.length() {
				dir.AddError("Illegal TIFF tag pointer offset")
				continue
			}
			tagValueOffset = tiffHeaderOffset + offsetVal
		} else {
			// 4 bytes or less; the value sits in the entry itself.
			tagValueOffset = tagOffset + 8
		}

		if tagValueOffset < 0 || tagValueOffset > d.r.length() {
			dir.AddError("Illegal TIFF tag pointer offset")
			continue
		}

		if byteCount < 0 || tagValueOffset+byteCount > d.r.length() {
			dir.AddError(fmt.Sprintf("Illegal number of bytes for TIFF tag data: %d", byteCount))
			continue
		}

		switch tagType {
		case TagExifSubIFDOffset:
			subDirOffset := tiffHeaderOffset + int(d.r.read4s(tagValueOffset))
			d.processIFD(d.md.GetOrCreateDirectory(ExifSubIFD), visited, subDirOffset, tiffHeaderOffset)
		case TagInteropOffset:
			subDirOffset := tiffHeaderOffset + int(d.r.read4s(tagValueOffset))
			d.processIFD(d.md.GetOrCreateDirectory(ExifInterop), visited, subDirOffset, tiffHeaderOffset)
		case TagGPSInfoOffset:
			subDirOffset := tiffHeaderOffset + int(d.r.read4s(tagValueOffset))
			d.processIFD(d.md.GetOrCreateDirectory(GPS), visited, subDirOffset, tiffHeaderOffset)
		case TagMakernoteOffset:
			// The makernote tag holds the encoded vendor block directly;
			// vendor-specific framing decides how to walk it.
			d.processMakernote(tagValueOffset, visited, tiffHeaderOffset)
		default:
			d.processTag(dir, tagType, tagValueOffset, componentCount, formatCode)
		}
	}

	// At the end of each IFD is an optional link to the next IFD. In Exif
	// the only known follower is the thumbnail directory.
	nextDirectoryOffset := int(d.r.read4s(entryOffset(ifdOffset, dirTagCount)))
	if nextDirectoryOffset != 0 {
		nextDirectoryOffset += tiffHeaderOffset
		if nextDirectoryOffset >= d.r.length() {
			// Out of bounds; some producers crop the trailing IFD away.
			return
		}
		if nextDirectoryOffset < ifdOffset {
			// Backward link.
			return
		}
		d.processIFD(d.md.GetOrCreateDirectory(ExifThumbnail), visited, nextDirectoryOffset, tiffHeaderOffset)
	}
}

// processTag reads componentCount components of the given format at
// tagValueOffset and stores the result in dir. The caller has already
// validated that the full value lies inside the byte region.
func (d *tiffDecoder) processTag(dir *Directory, tagType, tagValueOffset, componentCount int, formatCode tiffFormat) {
	switch formatCode {
	case fmtUndefined:
		// This includes Exif user comments.
		dir.SetByteArray(tagType, d.r.readBytes(tagValueOffset, componentCount))
	case fmtString:
		dir.SetString(tagType, d.r.readNullTerminatedString(tagValueOffset, componentCount))
	case fmtURational:
		if componentCount == 1 {
			dir.SetRational(tagType, NewRat(d.r.read4(tagValueOffset), d.r.read4(tagValueOffset+4)))
		} else if componentCount > 1 {
			rationals := make([]Rat[uint32], componentCount)
			for i := range rationals {
				rationals[i] = NewRat(d.r.read4(tagValueOffset+8*i), d.r.read4(tagValueOffset+4+8*i))
			}
			dir.SetRationalArray(tagType, rationals)
		}
	case fmtSRational:
		if componentCount == 1 {
			dir.SetSignedRational(tagType, NewRat(d.r.read4s(tagValueOffset), d.r.read4s(tagValueOffset+4)))
		} else if componentCount > 1 {
			rationals := make([]Rat[int32], componentCount)
			for i := range rationals {
				rationals[i] = NewRat(d.r.read4s(tagValueOffset+8*i), d.r.read4s(tagValueOffset+4+8*i))
			}
			dir.SetSignedRationalArray(tagType, rationals)
		}
	case fmtSingle:
		if componentCount == 1 {
			dir.SetFloat(tagType, d.r.read4f(tagValueOffset))
		} else {
			floats := make([]float32, componentCount)
			for i := range floats {
				floats[i] = d.r.read4f(tagValueOffset + 4*i)
			}
			dir.SetFloatArray(tagType, floats)
		}
	case fmtDouble:
		if componentCount == 1 {
			dir.SetDouble(tagType, d.r.read8f(tagValueOffset))
		} else {
			doubles := make([]float64, componentCount)
			for i := range doubles {
				doubles[i] = d.r.read8f(tagValueOffset + 8*i)
			}
			dir.SetDoubleArray(tagType, doubles)
		}

	// All integral formats are stored as 32-bit signed values, the widest
	// integral slot TIFF defines.

	case fmtSByte:
		if componentCount == 1 {
			dir.SetInt(tagType, int(d.r.read1s(tagValueOffset)))
		} else {
			ints := make([]int, componentCount)
			for i := range ints {
				ints[i] = int(d.r.read1s(tagValueOffset + i))
			}
			dir.SetIntArray(tagType, ints)
		}
	case fmtByte:
		if componentCount == 1 {
			dir.SetInt(tagType, int(d.r.read1(tagValueOffset)))
		} else {
			ints := make([]int, componentCount)
			for i := range ints {
				ints[i] = int(d.r.read1(tagValueOffset + i))
			}
			dir.SetIntArray(tagType, ints)
		}
	case fmtUShort:
		if componentCount == 1 {
			dir.SetInt(tagType, int(d.r.read2(tagValueOffset)))
		} else {
			ints := make([]int, componentCount)
			for i := range ints {
				ints[i] = int(d.r.read2(tagValueOffset + 2*i))
			}
			dir.SetIntArray(tagType, ints)
		}
	case fmtSShort:
		if componentCount == 1 {
			dir.SetInt(tagType, int(d.r.read2s(tagValueOffset)))
		} else {
			ints := make([]int, componentCount)
			for i := range ints {
				ints[i] = int(d.r.read2s(tagValueOffset + 2*i))
			}
			dir.SetIntArray(tagType, ints)
		}
	case fmtSLong, fmtULong:
		// 'long' in TIFF means 32 bit.
		if componentCount == 1 {
			dir.SetInt(tagType, int(d.r.read4s(tagValueOffset)))
		} else {
			ints := make([]int, componentCount)
			for i := range ints {
				ints[i] = int(d.r.read4s(tagValueOffset + 4*i))
			}
			dir.SetIntArray(tagType, ints)
		}
	default:
		dir.AddError(fmt.Sprintf("Unknown format code %d for tag %d", formatCode, tagType))
	}
}

// entryOffset returns the offset of the zero-based entryNumber'th 12-byte
// entry in the IFD starting at dirStartOffset.
func entryOffset(dirStartOffset, entryNumber int) int {
	return dirStartOffset + 2 + 12*entryNumber
}
