package exifdata

import (
	"fmt"
	"strconv"
)

// Ratio preserves an EXIF RATIONAL value exactly, so downstream
// conversions see the un-rounded numerator and denominator.
type Ratio struct {
	Num int64
	Den int64
}

// Float reduces the ratio to a float64. A zero denominator yields 0;
// callers that must distinguish that case check Den themselves.
func (r Ratio) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Ratio) String() string {
	if r.Den == 0 {
		return fmt.Sprintf("%d/0", r.Num)
	}
	if r.Num%r.Den == 0 {
		return strconv.FormatInt(r.Num/r.Den, 10)
	}
	return strconv.FormatFloat(r.Float(), 'f', -1, 64)
}

// Tag is a single decoded EXIF field.
type Tag struct {
	Name  string
	ID    uint16
	Value any
}

// RawTags holds decoded EXIF fields in a fixed order. Fields from the
// GPS sub-IFD are kept apart under their numeric tag IDs; they need a
// secondary name resolution step that is the classifier's job, not the
// decoder's.
type RawTags struct {
	entries []Tag
	index   map[string]int
	gps     map[uint16]any
}

func NewRawTags() *RawTags {
	return &RawTags{index: make(map[string]int)}
}

// Add appends a tag. A repeated name keeps its original position but
// takes the newer value.
func (r *RawTags) Add(name string, id uint16, value any) {
	if i, ok := r.index[name]; ok {
		r.entries[i].Value = value
		return
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Tag{Name: name, ID: id, Value: value})
}

// AddGPS records a GPS sub-IFD field under its numeric tag ID.
func (r *RawTags) AddGPS(id uint16, value any) {
	if r.gps == nil {
		r.gps = make(map[uint16]any)
	}
	r.gps[id] = value
}

func (r *RawTags) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.entries[i].Value, true
}

// Tags returns the fields in insertion order.
func (r *RawTags) Tags() []Tag {
	return r.entries
}

func (r *RawTags) Len() int {
	return len(r.entries)
}

// GPSInfo returns the GPS sub-IFD map, or nil when the image carried
// no GPS block at all. Nil and empty are distinct to callers.
func (r *RawTags) GPSInfo() map[uint16]any {
	return r.gps
}
