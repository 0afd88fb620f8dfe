package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by BulletPoints operations given an index
// outside the collection bounds.
var ErrIndexOutOfRange = errors.New("bullet point index out of range")

// BulletPoints is an ordered list of lesson key points. All mutators
// validate their index and keep the relative order of untouched entries.
// The zero value is an empty list ready to use.
type BulletPoints struct {
	items []string
}

// NewBulletPoints copies points into a new collection.
func NewBulletPoints(points ...string) BulletPoints {
	return BulletPoints{items: append([]string(nil), points...)}
}

func (b BulletPoints) Len() int { return len(b.items) }

// At returns the point at i.
func (b BulletPoints) At(i int) (string, error) {
	if i < 0 || i >= len(b.items) {
		return "", indexError(i, len(b.items))
	}
	return b.items[i], nil
}

// Items returns a copy of the points.
func (b BulletPoints) Items() []string {
	return append([]string(nil), b.items...)
}

// Clone returns an independent copy; mutating the copy never affects b.
func (b BulletPoints) Clone() BulletPoints {
	return NewBulletPoints(b.items...)
}

// Append adds a point at the end.
func (b *BulletPoints) Append(point string) {
	b.items = append(b.items, point)
}

// InsertAt inserts point before position i; i == Len() appends.
func (b *BulletPoints) InsertAt(i int, point string) error {
	if i < 0 || i > len(b.items) {
		return indexError(i, len(b.items))
	}
	b.items = append(b.items, "")
	copy(b.items[i+1:], b.items[i:])
	b.items[i] = point
	return nil
}

// ReplaceAt overwrites the point at i.
func (b *BulletPoints) ReplaceAt(i int, point string) error {
	if i < 0 || i >= len(b.items) {
		return indexError(i, len(b.items))
	}
	b.items[i] = point
	return nil
}

// RemoveAt deletes the point at i, shifting later points down by one.
func (b *BulletPoints) RemoveAt(i int) error {
	if i < 0 || i >= len(b.items) {
		return indexError(i, len(b.items))
	}
	b.items = append(b.items[:i:i], b.items[i+1:]...)
	return nil
}

func (b BulletPoints) MarshalJSON() ([]byte, error) {
	if b.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.items)
}

func (b *BulletPoints) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	b.items = items
	return nil
}

func indexError(i, n int) error {
	return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, n)
}
