package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Unmarshal decodes a snapshot produced by Marshal.
//
// The magic bytes and version are checked first, then the SHA-256 trailer,
// then the payload is parsed and validated. On any failure a nil snapshot is
// returned together with the error.
func Unmarshal(data []byte) (*Snapshot, error) {
	if len(data) < len(MagicBytes) {
		return nil, fmt.Errorf("failed to read magic bytes: %w", ErrTruncated)
	}
	if string(data[:len(MagicBytes)]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if len(data) < fixedPrefixSize+ChecksumSize {
		return nil, fmt.Errorf("failed to read header: %w", ErrTruncated)
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	payload := data[:len(data)-ChecksumSize]
	var stored [ChecksumSize]byte
	copy(stored[:], data[len(payload):])
	if err := ValidateChecksum(ComputeChecksum(payload), stored); err != nil {
		return nil, err
	}

	c := &cursor{buf: payload, off: 8}
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	if c.off != len(payload) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(payload)-c.off)
	}
	if err := ValidateSnapshot(s); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return s, nil
}

// Decode reads an entire snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Unmarshal(data)
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*Snapshot, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Unmarshal(data)
}

// cursor walks a verified payload. Every read is bounds-checked so a
// well-checksummed but malformed payload still fails cleanly.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) need(n int, what string) error {
	if n < 0 || len(c.buf)-c.off < n {
		return fmt.Errorf("failed to read %s: %w", what, ErrTruncated)
	}
	return nil
}

func (c *cursor) readUint8(what string) (uint8, error) {
	if err := c.need(1, what); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

func (c *cursor) readUint32(what string) (uint32, error) {
	if err := c.need(4, what); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) readFloat64(what string) (float64, error) {
	if err := c.need(8, what); err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(c.buf[c.off:]))
	c.off += 8
	return v, nil
}

func (c *cursor) snapshot() (*Snapshot, error) {
	act, err := c.readUint8("activation")
	if err != nil {
		return nil, err
	}
	lr, err := c.readFloat64("learning rate")
	if err != nil {
		return nil, err
	}
	count, err := c.readUint32("layer count")
	if err != nil {
		return nil, err
	}
	if count > MaxLayers {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyLayers, count, MaxLayers)
	}

	sizes := make([]int, count)
	for i := range sizes {
		n, err := c.readUint32("layer sizes")
		if err != nil {
			return nil, err
		}
		sizes[i] = int(n)
	}
	if err := ValidateLayerSizes(sizes); err != nil {
		return nil, err
	}

	s := &Snapshot{
		LayerSizes:   sizes,
		Activation:   act,
		LearningRate: lr,
		Weights:      make([]*matrix.Matrix, 0, len(sizes)-1),
		Biases:       make([]*matrix.Matrix, 0, len(sizes)-1),
	}
	for i := 0; i+1 < len(sizes); i++ {
		w, err := c.readMatrix(fmt.Sprintf("weight.%d", i), sizes[i+1], sizes[i])
		if err != nil {
			return nil, err
		}
		b, err := c.readMatrix(fmt.Sprintf("bias.%d", i), sizes[i+1], 1)
		if err != nil {
			return nil, err
		}
		s.Weights = append(s.Weights, w)
		s.Biases = append(s.Biases, b)
	}
	return s, nil
}

// readMatrix reads one encoded matrix, rejecting a shape other than rows×cols
// before allocating its data.
func (c *cursor) readMatrix(field string, rows, cols int) (*matrix.Matrix, error) {
	r, err := c.readUint32(field + " rows")
	if err != nil {
		return nil, err
	}
	k, err := c.readUint32(field + " cols")
	if err != nil {
		return nil, err
	}
	if int(r) != rows || int(k) != cols {
		return nil, &ValidationError{
			Type:    "shape_mismatch",
			Field:   field,
			Details: fmt.Sprintf("expected (%d,%d), got (%d,%d)", rows, cols, r, k),
		}
	}

	n := rows * cols
	if err := c.need(8*n, field+" data"); err != nil {
		return nil, err
	}
	data := make([]float64, n)
	for i := range data {
		data[i], _ = c.readFloat64(field)
	}
	return matrix.New(rows, cols, data)
}
