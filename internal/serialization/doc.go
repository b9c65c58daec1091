// Package serialization provides the binary snapshot format for perceptron networks.
//
// The format is a compact little-endian encoding followed by a SHA-256 trailer:
//
//	Format Structure:
//	  [4 bytes: Magic "BMLP"]
//	  [4 bytes: Version (uint32 LE)]
//	  [1 byte:  Activation tag]
//	  [8 bytes: Learning rate (float64 bits, LE)]
//	  [4 bytes: Layer count L (uint32 LE)]
//	  [L × 4 bytes: Layer sizes (uint32 LE)]
//	  For each transition i in [0, L-1):
//	    [Weight matrix i: rows uint32, cols uint32, rows*cols float64 row-major]
//	    [Bias matrix i:   rows uint32, cols uint32, rows*cols float64 row-major]
//	  [32 bytes: SHA-256 of every preceding byte]
//
// Float values are stored as raw IEEE-754 bits, so a snapshot round-trips
// bit-for-bit. Decoding validates the magic, version, checksum, layer limits
// and every matrix shape against the layer sizes before anything is returned.
//
// Example usage:
//
//	data, err := serialization.Marshal(&serialization.Snapshot{...})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	snap, err := serialization.Unmarshal(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
