// Package backup compresses JSON snapshots of the review collection.
package backup

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Extension is appended to compressed snapshot filenames.
const Extension = ".zst"

// Codec compresses and decompresses snapshot payloads with zstd.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec builds a reusable Codec.
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Compress returns the zstd-compressed payload.
func (c *Codec) Compress(val []byte) ([]byte, error) {
	return c.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

// Decompress restores a compressed payload.
func (c *Codec) Decompress(val []byte) ([]byte, error) {
	return c.decoder.DecodeAll(val, nil)
}
