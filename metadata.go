// Copyright 2026 Hoa Le
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"fmt"
	"strconv"
	"strings"
)

// DirectoryKind identifies a logical metadata directory. A Metadata holds at
// most one directory per kind.
type DirectoryKind int

const (
	// ExifIFD0 is the main image directory.
	ExifIFD0 DirectoryKind = iota + 1
	// ExifSubIFD is the Exif sub-directory pointed to by tag 0x8769.
	ExifSubIFD
	// ExifInterop is the interoperability directory pointed to by tag 0xA005.
	ExifInterop
	// GPS is the GPS directory pointed to by tag 0x8825.
	GPS
	// ExifThumbnail is the follower IFD holding thumbnail tags and,
	// when present, the raw thumbnail bytes.
	ExifThumbnail

	// Makernote directories, one per vendor framing.
	OlympusMakernote
	NikonType1Makernote
	NikonType2Makernote
	CanonMakernote
	CasioType1Makernote
	CasioType2Makernote
	FujifilmMakernote
	KodakMakernote
	KyoceraMakernote
	LeicaMakernote
	PanasonicMakernote
	PentaxMakernote
	SigmaMakernote
	SonyType1Makernote
	SonyType6Makernote
)

var directoryKindNames = map[DirectoryKind]string{
	ExifIFD0:            "Exif IFD0",
	ExifSubIFD:          "Exif SubIFD",
	ExifInterop:         "Interoperability",
	GPS:                 "GPS",
	ExifThumbnail:       "Exif Thumbnail",
	OlympusMakernote:    "Olympus Makernote",
	NikonType1Makernote: "Nikon Makernote",
	NikonType2Makernote: "Nikon Makernote",
	CanonMakernote:      "Canon Makernote",
	CasioType1Makernote: "Casio Makernote",
	CasioType2Makernote: "Casio Makernote",
	FujifilmMakernote:   "Fujifilm Makernote",
	KodakMakernote:      "Kodak Makernote",
	KyoceraMakernote:    "Kyocera/Contax Makernote",
	LeicaMakernote:      "Leica Makernote",
	PanasonicMakernote:  "Panasonic Makernote",
	PentaxMakernote:     "Pentax Makernote",
	SigmaMakernote:      "Sigma/Foveon Makernote",
	SonyType1Makernote:  "Sony Makernote",
	SonyType6Makernote:  "Sony Makernote",
}

func (k DirectoryKind) String() string {
	if name, ok := directoryKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DirectoryKind(%d)", int(k))
}

// Metadata is a collection of directories keyed by kind.
type Metadata struct {
	directories map[DirectoryKind]*Directory
	order       []DirectoryKind
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{
		directories: make(map[DirectoryKind]*Directory),
	}
}

// GetOrCreateDirectory returns the directory of the given kind, creating it
// if this is the first request for that kind.
func (m *Metadata) GetOrCreateDirectory(kind DirectoryKind) *Directory {
	if d, ok := m.directories[kind]; ok {
		return d
	}
	d := &Directory{
		kind: kind,
		tags: make(map[int]any),
	}
	m.directories[kind] = d
	m.order = append(m.order, kind)
	return d
}

// GetDirectory returns the directory of the given kind, or nil if none has
// been created.
func (m *Metadata) GetDirectory(kind DirectoryKind) *Directory {
	return m.directories[kind]
}

// Directories returns the directories in creation order.
func (m *Metadata) Directories() []*Directory {
	ds := make([]*Directory, 0, len(m.order))
	for _, kind := range m.order {
		ds = append(ds, m.directories[kind])
	}
	return ds
}

// Directory maps integer tag ids to typed values and collects the error
// strings recorded while it was populated.
type Directory struct {
	kind      DirectoryKind
	tags      map[int]any
	order     []int
	errors    []string
	thumbnail []byte
}

// Kind returns the directory kind.
func (d *Directory) Kind() DirectoryKind {
	return d.kind
}

// Name returns the display name of the directory.
func (d *Directory) Name() string {
	return d.kind.String()
}

func (d *Directory) set(tagID int, v any) {
	if _, ok := d.tags[tagID]; !ok {
		d.order = append(d.order, tagID)
	}
	d.tags[tagID] = v
}

// SetInt stores an integer value for the given tag.
func (d *Directory) SetInt(tagID, value int) {
	d.set(tagID, value)
}

// SetIntArray stores an integer array value for the given tag.
func (d *Directory) SetIntArray(tagID int, value []int) {
	d.set(tagID, value)
}

// SetLong stores a 64-bit integer value for the given tag.
func (d *Directory) SetLong(tagID int, value int64) {
	d.set(tagID, value)
}

// SetFloat stores a 32-bit float value for the given tag.
func (d *Directory) SetFloat(tagID int, value float32) {
	d.set(tagID, value)
}

// SetFloatArray stores a 32-bit float array value for the given tag.
func (d *Directory) SetFloatArray(tagID int, value []float32) {
	d.set(tagID, value)
}

// SetDouble stores a 64-bit float value for the given tag.
func (d *Directory) SetDouble(tagID int, value float64) {
	d.set(tagID, value)
}

// SetDoubleArray stores a 64-bit float array value for the given tag.
func (d *Directory) SetDoubleArray(tagID int, value []float64) {
	d.set(tagID, value)
}

// SetString stores a string value for the given tag.
func (d *Directory) SetString(tagID int, value string) {
	d.set(tagID, value)
}

// SetRational stores an unsigned rational value for the given tag.
func (d *Directory) SetRational(tagID int, value Rat[uint32]) {
	d.set(tagID, value)
}

// SetRationalArray stores an unsigned rational array value for the given tag.
func (d *Directory) SetRationalArray(tagID int, value []Rat[uint32]) {
	d.set(tagID, value)
}

// SetSignedRational stores a signed rational value for the given tag.
func (d *Directory) SetSignedRational(tagID int, value Rat[int32]) {
	d.set(tagID, value)
}

// SetSignedRationalArray stores a signed rational array value for the given tag.
func (d *Directory) SetSignedRationalArray(tagID int, value []Rat[int32]) {
	d.set(tagID, value)
}

// SetByteArray stores a raw byte value for the given tag.
func (d *Directory) SetByteArray(tagID int, value []byte) {
	d.set(tagID, value)
}

// ContainsTag reports whether a value has been stored for the given tag.
func (d *Directory) ContainsTag(tagID int) bool {
	_, ok := d.tags[tagID]
	return ok
}

// TagCount returns the number of tags stored.
func (d *Directory) TagCount() int {
	return len(d.tags)
}

// TagIDs returns the stored tag ids in insertion order.
func (d *Directory) TagIDs() []int {
	ids := make([]int, len(d.order))
	copy(ids, d.order)
	return ids
}

// Value returns the raw stored value for the given tag, or nil.
func (d *Directory) Value(tagID int) any {
	return d.tags[tagID]
}

// GetInteger returns the value of the given tag as an int. Numeric strings
// are converted. The second return value is false if the tag is absent or
// holds neither an integral value nor a numeric string.
func (d *Directory) GetInteger(tagID int) (int, bool) {
	switch v := d.tags[tagID].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// GetString returns the value of the given tag rendered as a string, or the
// empty string if the tag is absent.
func (d *Directory) GetString(tagID int) string {
	switch v := d.tags[tagID].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return decodeLatin1(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// TagName returns the display name for the given tag in this directory.
func (d *Directory) TagName(tagID int) string {
	if fields, ok := directoryFields[d.kind]; ok {
		if name, ok := fields[uint16(tagID)]; ok {
			return name
		}
	}
	return fmt.Sprintf("%s0x%04x", UnknownPrefix, tagID)
}

// AddError appends a parse error to the directory.
func (d *Directory) AddError(message string) {
	d.errors = append(d.errors, message)
}

// Errors returns the parse errors recorded on this directory, in order.
func (d *Directory) Errors() []string {
	return d.errors
}

// SetThumbnailData attaches raw thumbnail bytes to the directory.
// Only meaningful for the ExifThumbnail kind.
func (d *Directory) SetThumbnailData(b []byte) {
	d.thumbnail = b
}

// ThumbnailData returns the raw thumbnail bytes, or nil.
func (d *Directory) ThumbnailData() []byte {
	return d.thumbnail
}
