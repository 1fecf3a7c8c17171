// pkg/intel/persist.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package intel

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/klauspost/compress/zstd"
)

// snapshot is the on-disk shape, gob-encoded and zstd-compressed.
type snapshot struct {
	Points   []Point
	Segments []Segment
}

// Save writes s's contents to w as a zstd-compressed gob stream.
func Save(w io.Writer, s *MemStore) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot{Points: s.Points(), Segments: s.Segments()}); err != nil {
		return err
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Open reads a zstd-compressed gob stream written by Save into a new
// MemStore.
func Open(r io.Reader) (*MemStore, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var snap snapshot
	if err := gob.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, err
	}
	s := NewMemStore()
	s.Load(snap.Points, snap.Segments)
	return s, nil
}
