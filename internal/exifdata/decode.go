// Package exifdata decodes EXIF fields from image files into an
// ordered, library-neutral form the rest of the tool can classify.
package exifdata

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	dexif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// canonicalNames maps decoder tag names onto the names the classifier
// keys its allow-lists by.
var canonicalNames = map[string]string{
	"PixelXDimension": "ExifImageWidth",
	"PixelYDimension": "ExifImageHeight",
}

func canonical(name string) string {
	if c, ok := canonicalNames[name]; ok {
		return c
	}
	return name
}

// Decode reads the EXIF block from the image at path. goexif handles
// the common JPEG/TIFF containers; when it refuses the file, the raw
// bytes are scanned for an embedded TIFF block instead, which also
// covers containers goexif has no parser for.
func Decode(path string) (*RawTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	raw, derr := decodeStructured(f)
	if derr == nil {
		return raw, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}
	raw, serr := decodeScan(f)
	if serr != nil {
		return nil, fmt.Errorf("decode exif: %w", derr)
	}
	return raw, nil
}

type fieldWalker struct {
	fields []Tag
	gps    map[uint16]any
}

func (w *fieldWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	value := tagValue(tag)
	if strings.HasPrefix(string(name), "GPS") {
		if w.gps == nil {
			w.gps = make(map[uint16]any)
		}
		w.gps[tag.Id] = value
		return nil
	}
	w.fields = append(w.fields, Tag{Name: canonical(string(name)), ID: tag.Id, Value: value})
	return nil
}

func decodeStructured(r io.Reader) (*RawTags, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, err
	}

	w := &fieldWalker{}
	if err := x.Walk(w); err != nil {
		return nil, err
	}

	// Walk visits fields in Go map order; sort by tag ID so repeated
	// runs over the same image produce identical reports.
	sort.Slice(w.fields, func(i, j int) bool { return w.fields[i].ID < w.fields[j].ID })

	raw := NewRawTags()
	for _, t := range w.fields {
		raw.Add(t.Name, t.ID, t.Value)
	}
	for id, v := range w.gps {
		raw.AddGPS(id, v)
	}
	return raw, nil
}

// tagValue normalizes a goexif field by its TIFF format class.
func tagValue(t *tiff.Tag) any {
	n := int(t.Count)
	switch t.Format() {
	case tiff.IntVal:
		vals := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			v, err := t.Int64(i)
			if err != nil {
				return t.String()
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case tiff.FloatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			v, err := t.Float(i)
			if err != nil {
				return t.String()
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case tiff.RatVal:
		vals := make([]Ratio, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := t.Rat2(i)
			if err != nil {
				return t.String()
			}
			vals = append(vals, Ratio{Num: num, Den: den})
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case tiff.StringVal:
		s, err := t.StringVal()
		if err != nil {
			return t.String()
		}
		return strings.TrimRight(s, "\x00")
	default:
		return t.String()
	}
}

const gpsIfdPath = "IFD/GPSInfo"

// decodeScan brute-force searches the file bytes for EXIF data and
// flattens whatever IFDs it finds, in their native order.
func decodeScan(r io.Reader) (*RawTags, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	seg, err := dexif.SearchAndExtractExif(data)
	if err != nil {
		return nil, err
	}

	entries, _, err := dexif.GetFlatExifData(seg, nil)
	if err != nil {
		return nil, err
	}

	raw := NewRawTags()
	for _, e := range entries {
		value := flatValue(e.Value)
		if e.IfdPath == gpsIfdPath {
			raw.AddGPS(e.TagId, value)
			continue
		}
		raw.Add(canonical(e.TagName), e.TagId, value)
	}
	return raw, nil
}

// flatValue normalizes a go-exif flat-dump value into the same shapes
// tagValue produces.
func flatValue(v any) any {
	switch v := v.(type) {
	case []exifcommon.Rational:
		vals := make([]Ratio, 0, len(v))
		for _, r := range v {
			vals = append(vals, Ratio{Num: int64(r.Numerator), Den: int64(r.Denominator)})
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case []exifcommon.SignedRational:
		vals := make([]Ratio, 0, len(v))
		for _, r := range v {
			vals = append(vals, Ratio{Num: int64(r.Numerator), Den: int64(r.Denominator)})
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals
	case string:
		return strings.TrimRight(v, "\x00")
	case []uint16:
		return intSlice(v)
	case []uint32:
		return intSlice(v)
	case []uint64:
		return intSlice(v)
	case []int16:
		return intSlice(v)
	case []int32:
		return intSlice(v)
	case []int64:
		return intSlice(v)
	case []int:
		return intSlice(v)
	default:
		return v
	}
}

func intSlice[T int | int16 | int32 | int64 | uint16 | uint32 | uint64](vals []T) any {
	out := make([]int64, 0, len(vals))
	for _, v := range vals {
		out = append(out, int64(v))
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
