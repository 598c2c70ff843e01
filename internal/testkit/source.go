package testkit

import (
	"context"
	"fmt"
	"sync/atomic"

	"listingscope/ports"
)

// StaticSource is an in-memory table source that counts its reads.
type StaticSource struct {
	name    string
	records [][]string
	err     error
	reads   atomic.Int32
}

var _ ports.TableSource = (*StaticSource)(nil)

// NewStaticSource serves records (header first) on every read.
func NewStaticSource(name string, records [][]string) *StaticSource {
	return &StaticSource{name: name, records: records}
}

// NewFailingSource fails every read with err.
func NewFailingSource(name string, err error) *StaticSource {
	return &StaticSource{name: name, err: err}
}

func (s *StaticSource) Name() string {
	return s.name
}

func (s *StaticSource) Read(ctx context.Context) (*ports.RawTable, error) {
	s.reads.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	if len(s.records) == 0 {
		return nil, fmt.Errorf("%s: no records", s.name)
	}
	return &ports.RawTable{Headers: s.records[0], Rows: s.records[1:]}, nil
}

// Reads returns how many times Read was called.
func (s *StaticSource) Reads() int {
	return int(s.reads.Load())
}

// TwoListings is the smallest table with two room types and two neighbourhood groups.
func TwoListings() [][]string {
	return [][]string{
		{"id", "room_type", "neighbourhood_group", "price"},
		{"1", "Private room", "Brooklyn", "100"},
		{"2", "Entire home/apt", "Manhattan", "300"},
	}
}
