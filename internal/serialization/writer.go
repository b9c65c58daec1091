package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Marshal encodes s into the binary snapshot format.
//
// The snapshot is validated first; an inconsistent snapshot is never written.
func Marshal(s *Snapshot) ([]byte, error) {
	if err := ValidateSnapshot(s); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	buf := make([]byte, 0, s.EncodedSize())
	buf = append(buf, MagicBytes...)
	buf = binary.LittleEndian.AppendUint32(buf, FormatVersion)
	buf = append(buf, s.Activation)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.LearningRate))

	//nolint:gosec // G115: bounded by MaxLayers and MaxLayerSize in ValidateSnapshot
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.LayerSizes)))
	for _, n := range s.LayerSizes {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(n)) //nolint:gosec // G115: validated above
	}

	for i := range s.Weights {
		buf = appendMatrix(buf, s.Weights[i])
		buf = appendMatrix(buf, s.Biases[i])
	}

	sum := ComputeChecksum(buf)
	return append(buf, sum[:]...), nil
}

// appendMatrix appends rows, cols and the row-major float64 bits of m.
func appendMatrix(buf []byte, m *matrix.Matrix) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Rows())) //nolint:gosec // G115: validated shape
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Cols())) //nolint:gosec // G115: validated shape
	for _, v := range m.Data() {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}

// Encode writes the encoded snapshot to w.
func Encode(w io.Writer, s *Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// WriteFile encodes s and stores it at path.
//
// The data is written to a temporary file in the same directory and renamed
// into place, so a crash never leaves a half-written snapshot at path.
func WriteFile(path string, s *Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() // Best effort close on error
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
