package exifmeta

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

// Tag ids the decoder recognizes structurally.
const (
	// TagExifSubIFDOffset points to the Exif SubIFD.
	TagExifSubIFDOffset = 0x8769
	// TagInteropOffset points to the interoperability IFD.
	TagInteropOffset = 0xA005
	// TagGPSInfoOffset points to the GPS IFD.
	TagGPSInfoOffset = 0x8825
	// TagMakernoteOffset holds the vendor makernote block.
	TagMakernoteOffset = 0x927C

	// TagMake is the camera make string in IFD0, used to pick the
	// makernote framing.
	TagMake = 0x010F

	// Thumbnail tags, stored in the ExifThumbnail directory.
	TagThumbnailCompression = 0x0103
	TagThumbnailOffset      = 0x0201
	TagThumbnailLength      = 0x0202
)

// Kodak makernote tags. The values double as the byte offsets of the fields
// inside the fixed-layout Kodak block.
const (
	KodakTagModel                = 0
	KodakTagQuality              = 9
	KodakTagBurstMode            = 10
	KodakTagImageWidth           = 12
	KodakTagImageHeight          = 14
	KodakTagYearCreated          = 16
	KodakTagMonthDayCreated      = 18
	KodakTagTimeCreated          = 20
	KodakTagBurstMode2           = 24
	KodakTagShutterMode          = 27
	KodakTagMeteringMode         = 28
	KodakTagSequenceNumber       = 29
	KodakTagFNumber              = 30
	KodakTagExposureTime         = 32
	KodakTagExposureCompensation = 36
	KodakTagFocusMode            = 56
	KodakTagWhiteBalance         = 64
	KodakTagFlashMode            = 92
	KodakTagFlashFired           = 93
	KodakTagISOSetting           = 94
	KodakTagISO                  = 96
	KodakTagTotalZoom            = 98
	KodakTagDateTimeStamp        = 100
	KodakTagColorMode            = 102
	KodakTagDigitalZoom          = 104
	KodakTagSharpness            = 107
)

var (
	fieldsIFD0      = map[uint16]string{0x100: "ImageWidth", 0x101: "ImageLength", 0x102: "BitsPerSample", 0x103: "Compression", 0x106: "PhotometricInterpretation", 0x10e: "ImageDescription", 0x10f: "Make", 0x110: "Model", 0x111: "StripOffsets", 0x112: "Orientation", 0x115: "SamplesPerPixel", 0x116: "RowsPerStrip", 0x117: "StripByteCounts", 0x11a: "XResolution", 0x11b: "YResolution", 0x11c: "PlanarConfiguration", 0x128: "ResolutionUnit", 0x12d: "TransferFunction", 0x131: "Software", 0x132: "DateTime", 0x13b: "Artist", 0x13e: "WhitePoint", 0x13f: "PrimaryChromaticities", 0x211: "YCbCrCoefficients", 0x212: "YCbCrSubSampling", 0x213: "YCbCrPositioning", 0x214: "ReferenceBlackWhite", 0x8298: "Copyright", 0x8769: "ExifIFDPointer", 0x8825: "GPSInfoIFDPointer", 0x9c9b: "XPTitle", 0x9c9c: "XPComment", 0x9c9d: "XPAuthor", 0x9c9e: "XPKeywords", 0x9c9f: "XPSubject"}
	fieldsSubIFD    = map[uint16]string{0x829a: "ExposureTime", 0x829d: "FNumber", 0x8822: "ExposureProgram", 0x8824: "SpectralSensitivity", 0x8827: "ISOSpeedRatings", 0x8828: "OECF", 0x9000: "ExifVersion", 0x9003: "DateTimeOriginal", 0x9004: "DateTimeDigitized", 0x9101: "ComponentsConfiguration", 0x9102: "CompressedBitsPerPixel", 0x9201: "ShutterSpeedValue", 0x9202: "ApertureValue", 0x9203: "BrightnessValue", 0x9204: "ExposureBiasValue", 0x9205: "MaxApertureValue", 0x9206: "SubjectDistance", 0x9207: "MeteringMode", 0x9208: "LightSource", 0x9209: "Flash", 0x920a: "FocalLength", 0x9214: "SubjectArea", 0x927c: "MakerNote", 0x9286: "UserComment", 0x9290: "SubSecTime", 0x9291: "SubSecTimeOriginal", 0x9292: "SubSecTimeDigitized", 0xa000: "FlashpixVersion", 0xa001: "ColorSpace", 0xa002: "PixelXDimension", 0xa003: "PixelYDimension", 0xa004: "RelatedSoundFile", 0xa005: "InteroperabilityIFDPointer", 0xa20b: "FlashEnergy", 0xa20c: "SpatialFrequencyResponse", 0xa20e: "FocalPlaneXResolution", 0xa20f: "FocalPlaneYResolution", 0xa210: "FocalPlaneResolutionUnit", 0xa214: "SubjectLocation", 0xa215: "ExposureIndex", 0xa217: "SensingMethod", 0xa300: "FileSource", 0xa301: "SceneType", 0xa302: "CFAPattern", 0xa401: "CustomRendered", 0xa402: "ExposureMode", 0xa403: "WhiteBalance", 0xa404: "DigitalZoomRatio", 0xa405: "FocalLengthIn35mmFilm", 0xa406: "SceneCaptureType", 0xa407: "GainControl", 0xa408: "Contrast", 0xa409: "Saturation", 0xa40a: "Sharpness", 0xa40b: "DeviceSettingDescription", 0xa40c: "SubjectDistanceRange", 0xa420: "ImageUniqueID", 0xa433: "LensMake", 0xa434: "LensModel"}
	fieldsGPS       = map[uint16]string{0x0: "GPSVersionID", 0x1: "GPSLatitudeRef", 0x2: "GPSLatitude", 0x3: "GPSLongitudeRef", 0x4: "GPSLongitude", 0x5: "GPSAltitudeRef", 0x6: "GPSAltitude", 0x7: "GPSTimeStamp", 0x8: "GPSSatellites", 0x9: "GPSStatus", 0xa: "GPSMeasureMode", 0xb: "GPSDOP", 0xc: "GPSSpeedRef", 0xd: "GPSSpeed", 0xe: "GPSTrackRef", 0xf: "GPSTrack", 0x10: "GPSImgDirectionRef", 0x11: "GPSImgDirection", 0x12: "GPSMapDatum", 0x13: "GPSDestLatitudeRef", 0x14: "GPSDestLatitude", 0x15: "GPSDestLongitudeRef", 0x16: "GPSDestLongitude", 0x17: "GPSDestBearingRef", 0x18: "GPSDestBearing", 0x19: "GPSDestDistanceRef", 0x1a: "GPSDestDistance", 0x1b: "GPSProcessingMethod", 0x1c: "GPSAreaInformation", 0x1d: "GPSDateStamp", 0x1e: "GPSDifferential"}
	fieldsInterop   = map[uint16]string{0x1: "InteroperabilityIndex", 0x2: "InteroperabilityVersion", 0x1001: "RelatedImageWidth", 0x1002: "RelatedImageLength"}
	fieldsThumbnail = map[uint16]string{0x103: "Compression", 0x201: "ThumbnailOffset", 0x202: "ThumbnailLength"}
	fieldsKodak     = map[uint16]string{KodakTagModel: "KodakModel", KodakTagQuality: "Quality", KodakTagBurstMode: "BurstMode", KodakTagImageWidth: "ImageWidth", KodakTagImageHeight: "ImageHeight", KodakTagYearCreated: "YearCreated", KodakTagMonthDayCreated: "MonthDayCreated", KodakTagTimeCreated: "TimeCreated", KodakTagBurstMode2: "BurstMode2", KodakTagShutterMode: "ShutterMode", KodakTagMeteringMode: "MeteringMode", KodakTagSequenceNumber: "SequenceNumber", KodakTagFNumber: "FNumber", KodakTagExposureTime: "ExposureTime", KodakTagExposureCompensation: "ExposureCompensation", KodakTagFocusMode: "FocusMode", KodakTagWhiteBalance: "WhiteBalance", KodakTagFlashMode: "FlashMode", KodakTagFlashFired: "FlashFired", KodakTagISOSetting: "ISOSetting", KodakTagISO: "ISO", KodakTagTotalZoom: "TotalZoom", KodakTagDateTimeStamp: "DateTimeStamp", KodakTagColorMode: "ColorMode", KodakTagDigitalZoom: "DigitalZoom", KodakTagSharpness: "Sharpness"}

	directoryFields = map[DirectoryKind]map[uint16]string{
		ExifIFD0:       fieldsIFD0,
		ExifSubIFD:     fieldsSubIFD,
		GPS:            fieldsGPS,
		ExifInterop:    fieldsInterop,
		ExifThumbnail:  fieldsThumbnail,
		KodakMakernote: fieldsKodak,
	}
)
