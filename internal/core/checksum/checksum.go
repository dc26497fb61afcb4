package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/Ning0612/Photostamp/internal/adapter"
)

// ErrTooLarge is returned when the content exceeds Options.MaxSize
var ErrTooLarge = errors.New("file too large to checksum")

// Options configures the checksum calculator
type Options struct {
	// MaxSize: content larger than this is not checksummed (0 = unlimited)
	// Default: 512MB, enough for RAW photos but not long videos
	MaxSize int64

	// BufferSize: size of buffer for streaming reads
	// Default: 32KB
	BufferSize int
}

// DefaultOptions returns the recommended default options
func DefaultOptions() Options {
	return Options{
		MaxSize:    512 * 1024 * 1024,
		BufferSize: 32 * 1024,
	}
}

// Calculator computes SHA256 checksums of renamed files so the journal can
// tell whether a file changed before undoing its rename
type Calculator struct {
	opts Options
}

// NewCalculator creates a new calculator with the given options
func NewCalculator(opts Options) *Calculator {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultOptions().BufferSize
	}
	return &Calculator{opts: opts}
}

// NewDefaultCalculator creates a calculator with default options
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultOptions())
}

// Calculate streams reader through SHA256 and returns the hex digest
func (c *Calculator) Calculate(ctx context.Context, reader io.Reader) (string, error) {
	h := sha256.New()

	var limited io.Reader = reader
	if c.opts.MaxSize > 0 {
		limited = io.LimitReader(reader, c.opts.MaxSize+1)
	}

	buffer := make([]byte, c.opts.BufferSize)
	total := int64(0)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := limited.Read(buffer)
		if n > 0 {
			total += int64(n)
			if c.opts.MaxSize > 0 && total > c.opts.MaxSize {
				return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.opts.MaxSize)
			}
			h.Write(buffer[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read error: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// File checksums the file at path read through adp.
// Files over MaxSize yield an empty checksum and no error.
func (c *Calculator) File(ctx context.Context, adp adapter.Adapter, path string) (string, error) {
	r, err := adp.Read(ctx, path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	sum, err := c.Calculate(ctx, r)
	if errors.Is(err, ErrTooLarge) {
		return "", nil
	}
	return sum, err
}
