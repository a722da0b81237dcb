// Package compression implements the archive codec on zlib deflate
// streams. Compression is single-shot with the output sized up front
// from a worst-case bound; decompression of a payload whose original
// size is unknown retries with geometrically growing capacity up to a
// hard attempt ceiling, which bounds the memory a hostile archive can
// make the tool allocate.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/krowno/krowno/internal/core/domain"
	krerrors "github.com/krowno/krowno/pkg/errors"
)

// ZlibCodec implements CompressionPort using zlib deflate streams.
// A codec holds only policy (retry budget, growth factor); every call
// works on its own buffers, so a single instance may be shared by
// concurrent callers without coordination.
type ZlibCodec struct {
	opts domain.CompressionOptions
}

// NewZlibCodec creates a codec with the given policy. Passing nil uses
// the tool's defaults (level 6, 6 attempts, 4× initial guess, 2× growth).
//
// Returns an error if:
// - The default level is outside the zlib range
// - The retry policy is degenerate (no attempts, non-growing factor)
func NewZlibCodec(opts *domain.CompressionOptions) (*ZlibCodec, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(opts); err != nil {
		return nil, err
	}
	return &ZlibCodec{opts: *opts}, nil
}

// Compress compresses data at the given level in one shot.
//
// The output buffer is pre-sized to Bound(len(data)), the worst case for
// deflate, so unlike decompression there is no capacity uncertainty and
// no retry. The returned result holds exactly the compressed bytes.
//
// Fails with a validation error for empty input or an out-of-range
// level (levels are rejected, never clamped), and with ErrCompress if
// the underlying library reports failure.
func (c *ZlibCodec) Compress(data []byte, level int) (*domain.CompressionResult, error) {
	if len(data) == 0 {
		return nil, krerrors.NewValidationError(
			"data", nil, errors.New("input must not be empty"),
		)
	}
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return nil, krerrors.NewValidationError(
			"level", level, fmt.Errorf(
				"compression level must be between %d and %d", zlib.HuffmanOnly, zlib.BestCompression,
			),
		)
	}

	out := bytes.NewBuffer(make([]byte, 0, c.Bound(len(data))))

	w, err := zlib.NewWriterLevel(out, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", krerrors.ErrCompress, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("%w: %v", krerrors.ErrCompress, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", krerrors.ErrCompress, err)
	}

	return &domain.CompressionResult{Data: out.Bytes(), Level: level}, nil
}

// Decompress restores the original bytes from a compressed payload of
// unknown decompressed size.
//
// The first candidate capacity is max(InitialMultiplier × len(data),
// MinInitialCapacity). Each attempt inflates the whole stream into a
// fresh buffer of the candidate size; a previous attempt's buffer is
// never reused, so partial contents from a failed attempt cannot leak
// into the result. If the buffer proves too small the candidate is
// multiplied by GrowthFactor and the attempt repeated, up to MaxAttempts
// times.
//
// A malformed stream fails immediately with ErrDecompress; growing
// capacity cannot fix corrupt input. Exhausting the attempt budget fails
// with ErrCapacityExhausted: the stream may be valid, but the codec
// refuses to keep growing. That ceiling is the decompression-bomb guard.
func (c *ZlibCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, krerrors.NewValidationError(
			"data", nil, errors.New("input must not be empty"),
		)
	}

	capacity := len(data) * c.opts.InitialMultiplier
	if capacity < domain.MinInitialCapacity {
		capacity = domain.MinInitialCapacity
	}

	for attempt := 0; attempt < c.opts.MaxAttempts; attempt++ {
		out := make([]byte, capacity)

		n, complete, err := inflateInto(data, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", krerrors.ErrDecompress, err)
		}
		if complete {
			return out[:n:n], nil
		}

		capacity *= c.opts.GrowthFactor
	}

	return nil, fmt.Errorf(
		"%w: gave up after %d attempts", krerrors.ErrCapacityExhausted, c.opts.MaxAttempts,
	)
}

// Bound returns the worst-case compressed size for n input bytes: the
// zlib compressBound formula (stored-block overhead plus stream header
// and checksum).
func (c *ZlibCodec) Bound(n int) int {
	return n + n>>12 + n>>14 + n>>25 + 13
}

// inflateInto decompresses data into out in one shot. complete=false
// with a nil error means out was too small for the full stream; n is
// only meaningful when complete is true.
func inflateInto(data, out []byte) (n int, complete bool, err error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return 0, false, err
	}
	defer r.Close()

	// Read manually rather than with io.ReadFull: the flate reader
	// reports a truncated stream as io.ErrUnexpectedEOF, which ReadFull
	// would collapse with its own early-EOF conversion. Only the
	// reader's io.EOF means the stream finished and its trailing
	// checksum verified; anything else is a real error.
	for n < len(out) {
		m, rerr := r.Read(out[n:])
		n += m
		if rerr == io.EOF {
			return n, true, nil
		}
		if rerr != nil {
			return 0, false, rerr
		}
	}

	// The buffer filled exactly. Probe for one more byte to distinguish
	// "fit exactly" from "too small"; the probe also forces checksum
	// verification when the stream is in fact finished.
	var probe [1]byte
	for {
		m, err := r.Read(probe[:])
		if m > 0 {
			return n, false, nil
		}
		if err == io.EOF {
			return n, true, nil
		}
		if err != nil {
			return 0, false, err
		}
	}
}
