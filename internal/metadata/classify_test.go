package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcnab/exifscope/internal/exifdata"
)

func dmsRatios(d, m, s int64) []exifdata.Ratio {
	return []exifdata.Ratio{{Num: d, Den: 1}, {Num: m, Den: 1}, {Num: s, Den: 1}}
}

func TestClassifyDeviceOnly(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.Add("Make", 0x010f, " Canon ")
	raw.Add("Model", 0x0110, "EOS 5D")

	rep, err := Classify(FileInfo{Name: "a.jpg"}, raw)
	require.NoError(t, err)

	assert.Nil(t, rep.GPS)
	require.Equal(t, []string{"Make", "Model"}, rep.Device.Keys())

	v, _ := rep.Device.Get("Make")
	assert.Equal(t, "Canon", v)
	v, _ = rep.Device.Get("Model")
	assert.Equal(t, "EOS 5D", v)

	assert.Zero(t, rep.DateTime.Len())
	assert.Zero(t, rep.Image.Len())
	assert.Zero(t, rep.Other.Len())
}

func TestClassifyGPS(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.AddGPS(0x0001, "N")
	raw.AddGPS(0x0002, dmsRatios(40, 26, 46))
	raw.AddGPS(0x0003, "W")
	raw.AddGPS(0x0004, dmsRatios(73, 59, 11))
	raw.AddGPS(0x0006, exifdata.Ratio{Num: 10025, Den: 100})

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)
	require.NotNil(t, rep.GPS)

	require.NotNil(t, rep.GPS.Latitude)
	require.NotNil(t, rep.GPS.Longitude)
	assert.InDelta(t, 40.446111, *rep.GPS.Latitude, 1e-9)
	assert.InDelta(t, -73.986389, *rep.GPS.Longitude, 1e-9)

	assert.Equal(t, "https://maps.google.com/?q=40.446111,-73.986389", rep.GPS.MapsURL)

	require.NotNil(t, rep.GPS.Altitude)
	assert.InDelta(t, 100.25, *rep.GPS.Altitude, 1e-9)
}

func TestClassifyGPSAltitudeOnly(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.AddGPS(0x0006, exifdata.Ratio{Num: 1234567, Den: 1000})

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)
	require.NotNil(t, rep.GPS)
	assert.Nil(t, rep.GPS.Latitude)
	assert.Nil(t, rep.GPS.Longitude)
	assert.Empty(t, rep.GPS.MapsURL)
	require.NotNil(t, rep.GPS.Altitude)
	assert.InDelta(t, 1234.57, *rep.GPS.Altitude, 1e-9)
}

func TestClassifyGPSUnresolvable(t *testing.T) {
	// A GPS block with neither coordinates nor altitude is absent,
	// not empty.
	raw := exifdata.NewRawTags()
	raw.AddGPS(0x0000, []int64{2, 3, 0, 0})
	raw.AddGPS(0x0001, "N")
	raw.AddGPS(0x0002, dmsRatios(40, 26, 46)) // no longitude: coordinates unresolved

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)
	assert.Nil(t, rep.GPS)
}

func TestClassifyCorruptGPSPropagates(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.AddGPS(0x0001, "N")
	raw.AddGPS(0x0002, "garbage")
	raw.AddGPS(0x0003, "W")
	raw.AddGPS(0x0004, dmsRatios(73, 59, 11))

	rep, err := Classify(FileInfo{}, raw)
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Contains(t, err.Error(), "gps latitude")
}

func TestClassifyImageSettingsCoercion(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.Add("ExposureTime", 0x829a, exifdata.Ratio{Num: 1, Den: 2000})
	raw.Add("Flash", 0x9209, int64(16))
	raw.Add("ISOSpeedRatings", 0x8827, int64(400))
	raw.Add("WhiteBalance", 0xa403, "Auto") // not numeric: keeps string form

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)

	v, _ := rep.Image.Get("ExposureTime")
	assert.Equal(t, 0.0005, v)
	v, _ = rep.Image.Get("Flash")
	assert.Equal(t, 16.0, v)
	v, _ = rep.Image.Get("ISOSpeedRatings")
	assert.Equal(t, 400.0, v)
	v, _ = rep.Image.Get("WhiteBalance")
	assert.Equal(t, "Auto", v)
}

func TestClassifyBuckets(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.Add("Make", 0x010f, "Canon")
	raw.Add("DateTimeOriginal", 0x9003, "2023:07:14 10:31:02")
	raw.Add("FNumber", 0x829d, exifdata.Ratio{Num: 28, Den: 10})
	raw.Add("Artist", 0x013b, "someone")
	raw.Add("MakerNote", 0x927c, "binary blob")
	raw.Add("UserComment", 0x9286, "noise")

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)

	// Every tag lands in exactly one bucket; excluded tags in none.
	assert.Equal(t, []string{"Make"}, rep.Device.Keys())
	assert.Equal(t, []string{"DateTimeOriginal"}, rep.DateTime.Keys())
	assert.Equal(t, []string{"FNumber"}, rep.Image.Keys())
	assert.Equal(t, []string{"Artist"}, rep.Other.Keys())

	seen := map[string]int{}
	for _, b := range []*Block{rep.Device, rep.DateTime, rep.Image, rep.Other} {
		for _, k := range b.Keys() {
			seen[k]++
		}
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "tag %s appears in %d buckets", k, n)
	}
	assert.NotContains(t, seen, "MakerNote")
	assert.NotContains(t, seen, "UserComment")
}

func TestClassifyOtherDropsUnprintable(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.Add("Artist", 0x013b, "someone")
	raw.Add("XPComment", 0x9c9c, nil)
	raw.Add("ImageDescription", 0x010e, "")

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Artist"}, rep.Other.Keys())
}

func TestClassifyOrderFollowsInput(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.Add("Software", 0x0131, "darktable")
	raw.Add("Make", 0x010f, "Canon")
	raw.Add("LensModel", 0xa434, "EF 50mm")

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Software", "Make", "LensModel"}, rep.Device.Keys())
}

func TestClassifyIdempotent(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.Add("Make", 0x010f, "Canon")
	raw.Add("DateTime", 0x0132, "2023:07:14 10:31:02")
	raw.AddGPS(0x0001, "N")
	raw.AddGPS(0x0002, dmsRatios(40, 26, 46))
	raw.AddGPS(0x0003, "E")
	raw.AddGPS(0x0004, dmsRatios(73, 59, 11))

	first, err := Classify(FileInfo{Name: "x.jpg"}, raw)
	require.NoError(t, err)
	second, err := Classify(FileInfo{Name: "x.jpg"}, raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassifyNilAndEmptyInput(t *testing.T) {
	rep, err := Classify(FileInfo{Name: "x.jpg"}, nil)
	require.NoError(t, err)
	assert.Nil(t, rep.GPS)
	assert.Zero(t, rep.Device.Len())

	rep, err = Classify(FileInfo{Name: "x.jpg"}, exifdata.NewRawTags())
	require.NoError(t, err)
	assert.Nil(t, rep.GPS)
	assert.Zero(t, rep.Other.Len())
}

func TestBucketListsDisjoint(t *testing.T) {
	seen := map[string]string{}
	record := func(list []string, name string) {
		for _, tag := range list {
			if prev, ok := seen[tag]; ok {
				t.Errorf("tag %s in both %s and %s", tag, prev, name)
			}
			seen[tag] = name
		}
	}
	record(deviceTags, "device")
	record(dateTimeTags, "datetime")
	record(imageTags, "image")
	for tag := range excludedTags {
		if prev, ok := seen[tag]; ok {
			t.Errorf("excluded tag %s also in %s", tag, prev)
		}
	}
}

func TestFormatValueShapes(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{exifdata.Ratio{Num: 28, Den: 10}, "2.8"},
		{exifdata.Ratio{Num: 50, Den: 1}, "50"},
		{int64(400), "400"},
		{2.5, "2.5"},
		{[]int64{2, 3}, "2 3"},
		{[]byte("abc\x00"), "abc"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapsURLEmbedsBothCoordinates(t *testing.T) {
	raw := exifdata.NewRawTags()
	raw.AddGPS(0x0001, "S")
	raw.AddGPS(0x0002, dmsRatios(12, 0, 0))
	raw.AddGPS(0x0003, "E")
	raw.AddGPS(0x0004, dmsRatios(45, 30, 0))

	rep, err := Classify(FileInfo{}, raw)
	require.NoError(t, err)
	require.NotNil(t, rep.GPS)
	assert.True(t, strings.HasPrefix(rep.GPS.MapsURL, "https://maps.google.com/?q="))
	assert.Contains(t, rep.GPS.MapsURL, "-12")
	assert.Contains(t, rep.GPS.MapsURL, "45.5")
}
