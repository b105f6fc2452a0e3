package share

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// ErrInvalidState is returned when a share string cannot be decoded.
var ErrInvalidState = errors.New("invalid share state")

const (
	// CompressionZstd selects zstd for new share strings.
	CompressionZstd = "zstd"
	// CompressionBrotli selects brotli for new share strings.
	CompressionBrotli = "brotli"
)

// Algorithm tags prefixed to the compressed payload.
const (
	tagZstd   byte = 'z'
	tagBrotli byte = 'b'
)

// maxDecodedBytes bounds the decompressed size of a share state.
const maxDecodedBytes = 4 << 20

var encoding = base64.RawURLEncoding

// Codec turns a State into a URL-safe string and back.
// Decoding detects the algorithm from the payload, so states written with either
// compression remain readable whatever the codec is configured to write.
type Codec struct {
	tag byte
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCodec creates a codec writing with the named compression.
func NewCodec(compression string) (*Codec, error) {
	var tag byte
	switch strings.ToLower(compression) {
	case CompressionZstd, "":
		tag = tagZstd
	case CompressionBrotli:
		tag = tagBrotli
	default:
		return nil, fmt.Errorf("unknown share compression: %s", compression)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedBytes))
	if err != nil {
		return nil, err
	}

	return &Codec{tag: tag, enc: enc, dec: dec}, nil
}

// Encode serializes s after dropping fully blank players.
func (c *Codec) Encode(s State) (string, error) {
	raw, err := marshalTuple(s.compact())
	if err != nil {
		return "", fmt.Errorf("failed to marshal share state: %w", err)
	}

	var payload []byte
	switch c.tag {
	case tagBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
		if _, err := w.Write(raw); err != nil {
			return "", err
		}
		if err := w.Close(); err != nil {
			return "", err
		}
		payload = buf.Bytes()
	default:
		payload = c.enc.EncodeAll(raw, nil)
	}

	return encoding.EncodeToString(append([]byte{c.tag}, payload...)), nil
}

// Decode parses a share string. The returned state always has at least two player
// slots. Any malformed input yields ErrInvalidState.
func (c *Codec) Decode(encoded string) (State, error) {
	data, err := encoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil || len(data) < 2 {
		return State{}, ErrInvalidState
	}

	var raw []byte
	switch data[0] {
	case tagZstd:
		raw, err = c.dec.DecodeAll(data[1:], nil)
	case tagBrotli:
		raw, err = io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(data[1:])), maxDecodedBytes+1))
		if err == nil && len(raw) > maxDecodedBytes {
			err = errors.New("share state too large")
		}
	default:
		err = fmt.Errorf("unknown algorithm tag %q", data[0])
	}
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	s, err := unmarshalTuple(raw)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return s.padded(), nil
}
