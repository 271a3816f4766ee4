package exifdata

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

func TestCanonicalAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PixelXDimension", "ExifImageWidth"},
		{"PixelYDimension", "ExifImageHeight"},
		{"Make", "Make"},
		{"DateTimeOriginal", "DateTimeOriginal"},
	}
	for _, tt := range tests {
		if got := canonical(tt.in); got != tt.want {
			t.Errorf("canonical(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFlatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			name: "single rational collapses",
			in:   []exifcommon.Rational{{Numerator: 28, Denominator: 10}},
			want: Ratio{Num: 28, Den: 10},
		},
		{
			name: "rational triplet stays a slice",
			in: []exifcommon.Rational{
				{Numerator: 40, Denominator: 1},
				{Numerator: 26, Denominator: 1},
				{Numerator: 46, Denominator: 1},
			},
			want: []Ratio{{Num: 40, Den: 1}, {Num: 26, Den: 1}, {Num: 46, Den: 1}},
		},
		{
			name: "signed rational",
			in:   []exifcommon.SignedRational{{Numerator: -1, Denominator: 3}},
			want: Ratio{Num: -1, Den: 3},
		},
		{
			name: "string keeps text, drops trailing NULs",
			in:   "Canon\x00",
			want: "Canon",
		},
		{
			name: "single uint16 collapses to int64",
			in:   []uint16{400},
			want: int64(400),
		},
		{
			name: "uint16 list widens",
			in:   []uint16{2, 3},
			want: []int64{2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flatValue(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("flatValue(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode("does/not/exist.jpg"); err == nil {
		t.Fatal("Decode of a missing file should fail")
	}
}

func TestDecodeNonImage(t *testing.T) {
	// Bytes with no EXIF block anywhere: both decoders must refuse.
	path := filepath.Join(t.TempDir(), "not-an-image.txt")
	if err := os.WriteFile(path, []byte("just some text, no tiff header"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); err == nil {
		t.Fatal("Decode of a non-image should fail")
	}
}
