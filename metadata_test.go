// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta_test

import (
	"testing"

	"github.com/hoa-le/exifmeta"

	qt "github.com/frankban/quicktest"
)

func TestMetadataGetOrCreateDirectory(t *testing.T) {
	c := qt.New(t)

	md := exifmeta.NewMetadata()
	c.Assert(md.GetDirectory(exifmeta.ExifIFD0), qt.IsNil)

	d1 := md.GetOrCreateDirectory(exifmeta.ExifIFD0)
	d2 := md.GetOrCreateDirectory(exifmeta.ExifIFD0)
	c.Assert(d1, qt.Equals, d2)
	c.Assert(md.GetDirectory(exifmeta.ExifIFD0), qt.Equals, d1)

	md.GetOrCreateDirectory(exifmeta.GPS)
	ds := md.Directories()
	c.Assert(len(ds), qt.Equals, 2)
	c.Assert(ds[0].Kind(), qt.Equals, exifmeta.ExifIFD0)
	c.Assert(ds[1].Kind(), qt.Equals, exifmeta.GPS)
}

func TestDirectoryNames(t *testing.T) {
	c := qt.New(t)

	c.Assert(exifmeta.ExifIFD0.String(), qt.Equals, "Exif IFD0")
	c.Assert(exifmeta.FujifilmMakernote.String(), qt.Equals, "Fujifilm Makernote")
	c.Assert(exifmeta.DirectoryKind(999).String(), qt.Equals, "DirectoryKind(999)")

	md := exifmeta.NewMetadata()
	d := md.GetOrCreateDirectory(exifmeta.ExifIFD0)
	c.Assert(d.Name(), qt.Equals, "Exif IFD0")
	c.Assert(d.TagName(0x010f), qt.Equals, "Make")
	c.Assert(d.TagName(0xbeef), qt.Equals, "UnknownTag_0xbeef")
}

func TestDirectoryValues(t *testing.T) {
	c := qt.New(t)

	md := exifmeta.NewMetadata()
	d := md.GetOrCreateDirectory(exifmeta.ExifIFD0)

	c.Assert(d.ContainsTag(1), qt.IsFalse)

	d.SetInt(1, 42)
	d.SetString(2, "hello")
	d.SetLong(3, 1<<40)
	d.SetIntArray(4, []int{1, 2, 3})
	d.SetByteArray(5, []byte{0xc9})
	d.SetString(6, "17")
	d.SetInt(1, 43) // overwrite

	c.Assert(d.ContainsTag(1), qt.IsTrue)
	c.Assert(d.TagCount(), qt.Equals, 6)
	c.Assert(d.TagIDs(), qt.DeepEquals, []int{1, 2, 3, 4, 5, 6})

	v, ok := d.GetInteger(1)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 43)

	v, ok = d.GetInteger(3)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1<<40)

	// Numeric strings convert.
	v, ok = d.GetInteger(6)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 17)

	_, ok = d.GetInteger(2)
	c.Assert(ok, qt.IsFalse)
	_, ok = d.GetInteger(99)
	c.Assert(ok, qt.IsFalse)

	c.Assert(d.GetString(2), qt.Equals, "hello")
	c.Assert(d.GetString(1), qt.Equals, "43")
	c.Assert(d.GetString(5), qt.Equals, "É")
	c.Assert(d.GetString(99), qt.Equals, "")

	c.Assert(d.Value(4), qt.DeepEquals, []int{1, 2, 3})
	c.Assert(d.Value(99), qt.IsNil)
}

func TestDirectoryErrors(t *testing.T) {
	c := qt.New(t)

	md := exifmeta.NewMetadata()
	d := md.GetOrCreateDirectory(exifmeta.GPS)

	c.Assert(len(d.Errors()), qt.Equals, 0)
	d.AddError("first")
	d.AddError("second")
	c.Assert(d.Errors(), qt.DeepEquals, []string{"first", "second"})
}

func TestDirectoryThumbnailData(t *testing.T) {
	c := qt.New(t)

	md := exifmeta.NewMetadata()
	d := md.GetOrCreateDirectory(exifmeta.ExifThumbnail)

	c.Assert(d.ThumbnailData(), qt.IsNil)
	d.SetThumbnailData([]byte{1, 2, 3})
	c.Assert(d.ThumbnailData(), qt.DeepEquals, []byte{1, 2, 3})
}
