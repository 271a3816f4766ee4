// Package metadata turns a raw EXIF tag dump into a categorized,
// serializable report.
package metadata

import (
	"bytes"
	"encoding/json"
)

// FileInfo describes the inspected file itself.
type FileInfo struct {
	Path   string  `json:"path"`
	Name   string  `json:"filename"`
	SizeKB float64 `json:"size_kb"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// GPSFix is the resolved GPS block. A nil *GPSFix means the image
// carried no usable GPS data; that is distinct from a fix with only
// some fields set.
type GPSFix struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	MapsURL   string   `json:"maps_url,omitempty"`
	Altitude  *float64 `json:"altitude_meters,omitempty"`
	Place     string   `json:"place,omitempty"`
}

// Report is the categorized result of one extraction. Constructed once
// by Classify and not mutated afterwards (the geocode step fills
// GPS.Place before the report is rendered).
type Report struct {
	File     FileInfo `json:"file"`
	GPS      *GPSFix  `json:"gps"`
	Device   *Block   `json:"device"`
	DateTime *Block   `json:"datetime"`
	Image    *Block   `json:"image"`
	Other    *Block   `json:"other"`
}

// Block is a tag bucket that remembers insertion order. encoding/json
// sorts plain map keys, which would scramble the order tags arrived
// in, so Block marshals its own object.
type Block struct {
	keys   []string
	values map[string]any
}

func NewBlock() *Block {
	return &Block{values: make(map[string]any)}
}

func (b *Block) Set(key string, value any) {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

func (b *Block) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

func (b *Block) Len() int {
	return len(b.keys)
}

// Keys returns the keys in insertion order.
func (b *Block) Keys() []string {
	return b.keys
}

func (b *Block) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(b.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
