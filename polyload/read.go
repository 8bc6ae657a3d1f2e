// Package polyload reads polygon sets from GeoJSON files and indexes them
// into a quadtree.
package polyload

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/mmap"
)

// ReadFile decodes the feature collection stored in name. Files ending in
// .zst are zstd compressed.
func ReadFile(name string, opts ...Option) ([]Feature, error) {
	data, err := readAll(name)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts...)
}

// Read decodes a feature collection from r.
func Read(r io.Reader, opts ...Option) ([]Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("can`t read features: %w", err)
	}
	return Decode(data, opts...)
}

func readAll(name string) ([]byte, error) {
	file, err := mmap.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(io.NewSectionReader(file, 0, int64(file.Len())))
		if err != nil {
			return nil, fmt.Errorf("can`t create zstd reader: %w", err)
		}
		defer dec.Close()

		data, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("can`t decompress %s: %w", name, err)
		}
		return data, nil
	}

	data := make([]byte, file.Len())
	if _, err := file.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("can`t read %s: %w", name, err)
	}
	return data, nil
}
