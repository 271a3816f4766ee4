package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmcnab/exifscope/internal/exifdata"
)

// Bucket allow-lists. These and excludedTags are mutually exclusive;
// TestBucketListsDisjoint guards that.
var (
	deviceTags   = []string{"Make", "Model", "Software", "LensMake", "LensModel"}
	dateTimeTags = []string{"DateTime", "DateTimeOriginal", "DateTimeDigitized"}

	imageTags = []string{
		"ExifImageWidth", "ExifImageHeight", "Orientation", "Flash",
		"FocalLength", "ExposureTime", "FNumber", "ISOSpeedRatings",
		"WhiteBalance", "ExposureMode",
	}

	// Noisy or binary-heavy tags that belong in no bucket. GPSInfo is
	// handled as its own sub-IFD, never as a flat tag.
	excludedTags = map[string]struct{}{
		"GPSInfo":     {},
		"MakerNote":   {},
		"UserComment": {},
	}
)

type bucket int

const (
	bucketOther bucket = iota
	bucketDevice
	bucketDateTime
	bucketImage
	bucketExcluded
)

var bucketByTag = buildBucketIndex()

func buildBucketIndex() map[string]bucket {
	m := make(map[string]bucket)
	for _, t := range deviceTags {
		m[t] = bucketDevice
	}
	for _, t := range dateTimeTags {
		m[t] = bucketDateTime
	}
	for _, t := range imageTags {
		m[t] = bucketImage
	}
	for t := range excludedTags {
		m[t] = bucketExcluded
	}
	return m
}

// Classify partitions raw into the report's fixed buckets. It is a
// pure function of its inputs: same tags in, same report out.
//
// Per-tag coercion problems degrade to the tag's string form or drop
// the tag; the only error that comes back is a structurally corrupt
// GPS record, which the caller should surface rather than mask.
func Classify(file FileInfo, raw *exifdata.RawTags) (*Report, error) {
	rep := &Report{
		File:     file,
		Device:   NewBlock(),
		DateTime: NewBlock(),
		Image:    NewBlock(),
		Other:    NewBlock(),
	}
	if raw == nil {
		return rep, nil
	}

	fix, err := extractGPS(raw.GPSInfo())
	if err != nil {
		return nil, err
	}
	rep.GPS = fix

	for _, t := range raw.Tags() {
		switch bucketByTag[t.Name] {
		case bucketDevice:
			if s, ok := stringify(t.Value); ok {
				rep.Device.Set(t.Name, strings.TrimSpace(s))
			}
		case bucketDateTime:
			if s, ok := stringify(t.Value); ok {
				rep.DateTime.Set(t.Name, s)
			}
		case bucketImage:
			if f, err := numericValue(t.Value); err == nil {
				rep.Image.Set(t.Name, f)
			} else if s, ok := stringify(t.Value); ok {
				rep.Image.Set(t.Name, s)
			}
		case bucketExcluded:
			// skip
		default:
			if s, ok := stringify(t.Value); ok {
				rep.Other.Set(t.Name, s)
			}
		}
	}
	return rep, nil
}

// gpsTagNames resolves GPS sub-IFD tag IDs to names, the secondary
// lookup the flat tags already got from the decoder.
var gpsTagNames = map[uint16]string{
	0x0000: "GPSVersionID",
	0x0001: "GPSLatitudeRef",
	0x0002: "GPSLatitude",
	0x0003: "GPSLongitudeRef",
	0x0004: "GPSLongitude",
	0x0005: "GPSAltitudeRef",
	0x0006: "GPSAltitude",
	0x0007: "GPSTimeStamp",
	0x0008: "GPSSatellites",
	0x0009: "GPSStatus",
	0x000a: "GPSMeasureMode",
	0x000b: "GPSDOP",
	0x000c: "GPSSpeedRef",
	0x000d: "GPSSpeed",
	0x0010: "GPSImgDirectionRef",
	0x0011: "GPSImgDirection",
	0x0012: "GPSMapDatum",
	0x001d: "GPSDateStamp",
}

// extractGPS resolves the GPS sub-IFD into a fix. Coordinates need
// value and hemisphere reference for both axes; altitude stands on its
// own. When neither resolves the block is absent (nil), which the
// renderer treats differently from an empty block.
func extractGPS(gps map[uint16]any) (*GPSFix, error) {
	if gps == nil {
		return nil, nil
	}

	named := make(map[string]any, len(gps))
	for id, v := range gps {
		name, ok := gpsTagNames[id]
		if !ok {
			name = fmt.Sprintf("0x%04x", id)
		}
		named[name] = v
	}

	fix := &GPSFix{}

	lat, latOK := named["GPSLatitude"]
	latRef, latRefOK := named["GPSLatitudeRef"]
	lon, lonOK := named["GPSLongitude"]
	lonRef, lonRefOK := named["GPSLongitudeRef"]
	if latOK && latRefOK && lonOK && lonRefOK {
		latDec, err := ConvertDMS(lat, refString(latRef))
		if err != nil {
			return nil, fmt.Errorf("gps latitude: %w", err)
		}
		lonDec, err := ConvertDMS(lon, refString(lonRef))
		if err != nil {
			return nil, fmt.Errorf("gps longitude: %w", err)
		}
		fix.Latitude = &latDec
		fix.Longitude = &lonDec
		fix.MapsURL = fmt.Sprintf("https://maps.google.com/?q=%v,%v", latDec, lonDec)
	}

	if alt, ok := named["GPSAltitude"]; ok {
		f, err := toFloat(alt)
		if err != nil {
			return nil, fmt.Errorf("gps altitude: %w", err)
		}
		rounded := roundTo(f, 2)
		fix.Altitude = &rounded
	}

	if fix.Latitude == nil && fix.Altitude == nil {
		return nil, nil
	}
	return fix, nil
}

func refString(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// numericValue coerces scalar-ish values for the image-settings
// bucket. Single-element slices count; anything longer does not.
func numericValue(value any) (float64, error) {
	switch v := value.(type) {
	case []int64:
		if len(v) == 1 {
			return float64(v[0]), nil
		}
	case []float64:
		if len(v) == 1 {
			return v[0], nil
		}
	case []exifdata.Ratio:
		if len(v) == 1 {
			return toFloat(v[0])
		}
	}
	return toFloat(value)
}

// stringify renders a tag value as display text, best effort. The
// false return drops the tag, mirroring how unprintable values are
// silently skipped rather than failing the whole pass.
func stringify(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	s := formatValue(value)
	if s == "" {
		return "", false
	}
	return s, true
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case exifdata.Ratio:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case []exifdata.Ratio:
		parts := make([]string, len(v))
		for i, r := range v {
			parts[i] = r.String()
		}
		return strings.Join(parts, " ")
	case []int64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, " ")
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strings.Join(parts, " ")
	case []byte:
		return strings.TrimRight(string(v), "\x00")
	default:
		return fmt.Sprintf("%v", v)
	}
}
