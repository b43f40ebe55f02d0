package metadata

import (
	"encoding/json"
	"strings"
)

// ChunkSize is the on-chain metadata limit for a single string value.
const ChunkSize = 64

// ChunkedField holds a metadata value that is either a single short string or
// an ordered run of ChunkSize-rune slices covering a longer one. It marshals
// to a JSON string in the first case and a JSON array in the second.
type ChunkedField struct {
	parts   []string
	chunked bool
}

// Chunk splits text into a ChunkedField. Lengths are measured in Unicode code
// points; strings shorter than ChunkSize pass through unchanged, longer ones
// become consecutive ChunkSize-rune slices with the remainder in the last
// slice. No normalization or trimming is applied.
func Chunk(text string) ChunkedField {
	runes := []rune(text)
	if len(runes) < ChunkSize {
		return ChunkedField{parts: []string{text}}
	}

	parts := make([]string, 0, (len(runes)+ChunkSize-1)/ChunkSize)
	for start := 0; start < len(runes); start += ChunkSize {
		end := start + ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return ChunkedField{parts: parts, chunked: true}
}

// Parts returns the ordered slices of the field. A short value yields a
// single-element slice.
func (f ChunkedField) Parts() []string {
	if len(f.parts) == 0 {
		return []string{""}
	}
	return f.parts
}

// Chunked reports whether the original value reached the chunking boundary.
func (f ChunkedField) Chunked() bool { return f.chunked }

// String reassembles the original value.
func (f ChunkedField) String() string { return strings.Join(f.parts, "") }

func (f ChunkedField) MarshalJSON() ([]byte, error) {
	if !f.chunked {
		if len(f.parts) == 0 {
			return json.Marshal("")
		}
		return json.Marshal(f.parts[0])
	}
	return json.Marshal(f.parts)
}
