package metadata

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ProbeFile collects the file descriptor for the report: absolute
// path, base name, size in KB, and pixel dimensions when the container
// can be decoded. A failed dimension probe is not an error; the fields
// stay zero and are omitted from JSON.
func ProbeFile(path string) (FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat image: %w", err)
	}

	info := FileInfo{
		Path:   abs,
		Name:   filepath.Base(path),
		SizeKB: roundTo(float64(st.Size())/1024, 2),
	}

	if w, h, err := probeDimensions(path); err == nil {
		info.Width = w
		info.Height = h
	}
	return info, nil
}

// probeDimensions reads just the image header, not the pixel data.
func probeDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
