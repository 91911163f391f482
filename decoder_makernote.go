// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding/binary"
	"strings"
)

// processMakernote dispatches on the vendor framing of the makernote block
// anchored at tagValueOffset. Each framing chooses the offset of the embedded
// IFD, the base its pointers are relative to, and in some cases a byte order
// override for the subtree. The enclosing walk's byte order is restored on
// exit regardless of the branch taken.
func (d *tiffDecoder) processMakernote(tagValueOffset int, visited map[int]bool, tiffHeaderOffset int) {
	ifd0 := d.md.GetDirectory(ExifIFD0)
	if ifd0 == nil {
		return
	}

	cameraMake := ifd0.GetString(TagMake)
	upperMake := strings.ToUpper(strings.TrimSpace(cameraMake))

	firstThreeChars := d.r.readString(tagValueOffset, 3)
	firstFourChars := d.r.readString(tagValueOffset, 4)
	firstFiveChars := d.r.readString(tagValueOffset, 5)
	firstSixChars := d.r.readString(tagValueOffset, 6)
	firstSevenChars := d.r.readString(tagValueOffset, 7)
	firstEightChars := d.r.readString(tagValueOffset, 8)
	firstTwelveChars := d.r.readString(tagValueOffset, 12)

	byteOrderBefore := d.r.byteOrder
	defer func() {
		d.r.byteOrder = byteOrderBefore
	}()

	switch {
	case firstFiveChars == "OLYMP" || firstFiveChars == "EPSON" || firstFourChars == "AGFA":
		// Epson and Agfa use the Olympus makernote standard.
		d.processIFD(d.md.GetOrCreateDirectory(OlympusMakernote), visited, tagValueOffset+8, tiffHeaderOffset)
	case strings.HasPrefix(upperMake, "NIKON"):
		if firstFiveChars == "Nikon" {
			// Two framings share the "Nikon" signature, told apart by the
			// byte after the NUL terminator: type 1 embeds a bare IFD after
			// an 8-byte header, type 2 embeds a complete TIFF stream whose
			// pointers are relative to its own header at anchor+10.
			switch d.r.read1(tagValueOffset + 6) {
			case 1:
				d.processIFD(d.md.GetOrCreateDirectory(NikonType1Makernote), visited, tagValueOffset+8, tiffHeaderOffset)
			case 2:
				d.processIFD(d.md.GetOrCreateDirectory(NikonType2Makernote), visited, tagValueOffset+18, tagValueOffset+10)
			default:
				ifd0.AddError("Unsupported Nikon makernote data ignored.")
			}
		} else {
			// No ASCII name; the IFD begins at the first makernote byte.
			// Seen on CoolPix 775, E990 and D1.
			d.processIFD(d.md.GetOrCreateDirectory(NikonType2Makernote), visited, tagValueOffset, tiffHeaderOffset)
		}
	case firstEightChars == "SONY CAM" || firstEightChars == "SONY DSC":
		d.processIFD(d.md.GetOrCreateDirectory(SonyType1Makernote), visited, tagValueOffset+12, tiffHeaderOffset)
	case firstTwelveChars == "SEMC MS\x00\x00\x00\x00\x00":
		// Force big-endian for this directory.
		d.r.byteOrder = binary.BigEndian
		// Skip the 12 byte header, 2 for "MM" and 6 more.
		d.processIFD(d.md.GetOrCreateDirectory(SonyType6Makernote), visited, tagValueOffset+20, tiffHeaderOffset)
	case firstEightChars == "SIGMA\x00\x00\x00" || firstEightChars == "FOVEON\x00\x00":
		d.processIFD(d.md.GetOrCreateDirectory(SigmaMakernote), visited, tagValueOffset+10, tiffHeaderOffset)
	case firstThreeChars == "KDK":
		if firstSevenChars == "KDK INFO" {
			d.r.byteOrder = binary.BigEndian
		} else {
			d.r.byteOrder = binary.LittleEndian
		}
		d.processKodakMakernote(d.md.GetOrCreateDirectory(KodakMakernote), tagValueOffset)
	case strings.EqualFold(cameraMake, "Canon"):
		d.processIFD(d.md.GetOrCreateDirectory(CanonMakernote), visited, tagValueOffset, tiffHeaderOffset)
	case strings.HasPrefix(upperMake, "CASIO"):
		if firstSixChars == "QVC\x00\x00\x00" {
			d.processIFD(d.md.GetOrCreateDirectory(CasioType2Makernote), visited, tagValueOffset+6, tiffHeaderOffset)
		} else {
			d.processIFD(d.md.GetOrCreateDirectory(CasioType1Makernote), visited, tagValueOffset, tiffHeaderOffset)
		}
	case firstEightChars == "FUJIFILM" || strings.EqualFold(cameraMake, "Fujifilm"):
		// Also seen on some Leica cameras, such as the Digilux-4.3.
		d.r.byteOrder = binary.LittleEndian
		// The 4 bytes after "FUJIFILM" point to the embedded IFD, relative
		// to the start of the makernote rather than the TIFF header.
		ifdStart := tagValueOffset + int(d.r.read4s(tagValueOffset+8))
		d.processIFD(d.md.GetOrCreateDirectory(FujifilmMakernote), visited, ifdStart, tagValueOffset)
	case strings.HasPrefix(upperMake, "MINOLTA"):
		// Models starting with MINOLTA in capitals carry a valid Olympus
		// makernote area that commences immediately.
		d.processIFD(d.md.GetOrCreateDirectory(OlympusMakernote), visited, tagValueOffset, tiffHeaderOffset)
	case firstSevenChars == "KYOCERA":
		d.processIFD(d.md.GetOrCreateDirectory(KyoceraMakernote), visited, tagValueOffset+22, tiffHeaderOffset)
	case firstFiveChars == "LEICA":
		d.r.byteOrder = binary.LittleEndian
		if cameraMake == "Leica Camera AG" {
			d.processIFD(d.md.GetOrCreateDirectory(LeicaMakernote), visited, tagValueOffset+8, tiffHeaderOffset)
		} else if cameraMake == "LEICA" {
			// Some Leica cameras use Panasonic makernote tags.
			d.processIFD(d.md.GetOrCreateDirectory(PanasonicMakernote), visited, tagValueOffset+8, tiffHeaderOffset)
		}
	case firstTwelveChars == "Panasonic\x00\x00\x00":
		// Non-standard IFD with Panasonic tags and no next-IFD pointer;
		// offsets are relative to the TIFF header.
		d.processIFD(d.md.GetOrCreateDirectory(PanasonicMakernote), visited, tagValueOffset+12, tiffHeaderOffset)
	case firstFourChars == "AOC\x00":
		// Non-standard IFD with Casio type 2 tags and no next-IFD pointer;
		// offsets are relative to the current tag. Observed on Pentax ist D.
		d.processIFD(d.md.GetOrCreateDirectory(CasioType2Makernote), visited, tagValueOffset+6, tagValueOffset)
	case strings.HasPrefix(upperMake, "PENTAX") || strings.HasPrefix(upperMake, "ASAHI"):
		// Non-standard IFD with Pentax tags and no next-IFD pointer;
		// offsets are relative to the current tag. Observed on the Pentax
		// Optio 330 and 430.
		d.processIFD(d.md.GetOrCreateDirectory(PentaxMakernote), visited, tagValueOffset, tagValueOffset)
	default:
		// Unknown vendor; the starting offset of the embedded data cannot
		// be determined, so the block is ignored.
	}
}

// processKodakMakernote reads the Kodak makernote, which is not an IFD but a
// fixed layout of values at known offsets. A bounds fault abandons the whole
// block with a single error; fields already set are kept.
func (d *tiffDecoder) processKodakMakernote(dir *Directory, tagValueOffset int) {
	defer func() {
		switch rv := recover().(type) {
		case nil:
		case boundsError:
			dir.AddError("Error processing Kodak makernote data: " + rv.Error())
		default:
			panic(rv)
		}
	}()

	dataOffset := tagValueOffset + 8

	dir.SetString(KodakTagModel, d.r.readString(dataOffset, 8))
	dir.SetInt(KodakTagQuality, int(d.r.read1(dataOffset+9)))
	dir.SetInt(KodakTagBurstMode, int(d.r.read1(dataOffset+10)))
	dir.SetInt(KodakTagImageWidth, int(d.r.read2(dataOffset+12)))
	dir.SetInt(KodakTagImageHeight, int(d.r.read2(dataOffset+14)))
	dir.SetInt(KodakTagYearCreated, int(d.r.read2(dataOffset+16)))
	dir.SetByteArray(KodakTagMonthDayCreated, d.r.readBytes(dataOffset+18, 2))
	dir.SetByteArray(KodakTagTimeCreated, d.r.readBytes(dataOffset+20, 4))
	dir.SetInt(KodakTagBurstMode2, int(d.r.read2(dataOffset+24)))
	dir.SetInt(KodakTagShutterMode, int(d.r.read1(dataOffset+27)))
	dir.SetInt(KodakTagMeteringMode, int(d.r.read1(dataOffset+28)))
	dir.SetInt(KodakTagSequenceNumber, int(d.r.read1(dataOffset+29)))
	dir.SetInt(KodakTagFNumber, int(d.r.read2(dataOffset+30)))
	dir.SetLong(KodakTagExposureTime, int64(d.r.read4(dataOffset+32)))
	dir.SetInt(KodakTagExposureCompensation, int(d.r.read2s(dataOffset+36)))
	dir.SetInt(KodakTagFocusMode, int(d.r.read1(dataOffset+56)))
	dir.SetInt(KodakTagWhiteBalance, int(d.r.read1(dataOffset+64)))
	dir.SetInt(KodakTagFlashMode, int(d.r.read1(dataOffset+92)))
	dir.SetInt(KodakTagFlashFired, int(d.r.read1(dataOffset+93)))
	dir.SetInt(KodakTagISOSetting, int(d.r.read2(dataOffset+94)))
	dir.SetInt(KodakTagISO, int(d.r.read2(dataOffset+96)))
	dir.SetInt(KodakTagTotalZoom, int(d.r.read2(dataOffset+98)))
	dir.SetInt(KodakTagDateTimeStamp, int(d.r.read2(dataOffset+100)))
	dir.SetInt(KodakTagColorMode, int(d.r.read2(dataOffset+102)))
	dir.SetInt(KodakTagDigitalZoom, int(d.r.read2(dataOffset+104)))
	dir.SetInt(KodakTagSharpness, int(d.r.read1s(dataOffset+107)))
}
