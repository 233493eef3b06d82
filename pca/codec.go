// SPDX-License-Identifier: MIT

package pca

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/eigenface/matrix"
)

// Database file layout (host byte order, like the matrix binary format):
//
//	"EFDB" | uint32 version
//	Mean | Eigenfaces | Projected | Eigenvalues as 1×K   (matrix binary format)
//	uint64 label count | per label: uint64 length, bytes
const (
	dbMagic   = "EFDB"
	dbVersion = uint32(1)

	// maxLabelLen bounds a single label so a corrupt length cannot force a
	// huge allocation.
	maxLabelLen = 1 << 16

	// labelChunk bounds the label slice preallocated from the stored count.
	labelChunk = 1 << 12
)

// countingWriter tracks bytes written for io.WriterTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

// WriteTo serializes db. It implements io.WriterTo.
//
// Errors:
//   - ErrCorruptDatabase when db does not validate; any error of w.
func (db *Database) WriteTo(w io.Writer) (int64, error) {
	if err := db.Validate(); err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	if _, err := bw.WriteString(dbMagic); err != nil {
		return cw.n, err
	}
	if err := binary.Write(bw, binary.NativeEndian, dbVersion); err != nil {
		return cw.n, err
	}
	values, err := matrix.NewDenseFrom(1, len(db.Eigenvalues), db.Eigenvalues)
	if err != nil {
		return cw.n, err
	}
	for _, m := range []*matrix.Dense{db.Mean, db.Eigenfaces, db.Projected, values} {
		if err = matrix.WriteBinary(bw, m); err != nil {
			return cw.n, fmt.Errorf("pca: write database: %w", err)
		}
	}
	if err = binary.Write(bw, binary.NativeEndian, uint64(len(db.Labels))); err != nil {
		return cw.n, err
	}
	for _, l := range db.Labels {
		if err = binary.Write(bw, binary.NativeEndian, uint64(len(l))); err != nil {
			return cw.n, err
		}
		if _, err = bw.WriteString(l); err != nil {
			return cw.n, err
		}
	}
	if err = bw.Flush(); err != nil {
		return cw.n, err
	}

	return cw.n, nil
}

// ReadDatabase decodes a database written by WriteTo and validates it.
//
// Errors:
//   - ErrCorruptDatabase for a wrong magic or version, truncated input,
//     malformed matrices or inconsistent shapes.
func ReadDatabase(r io.Reader) (*Database, error) {
	br := bufio.NewReader(r)
	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, corruptRead("magic", err)
	}
	if string(magic[:]) != dbMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptDatabase, magic[:])
	}
	var version uint32
	if err := binary.Read(br, binary.NativeEndian, &version); err != nil {
		return nil, corruptRead("version", err)
	}
	if version != dbVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptDatabase, version)
	}

	parts := [4]*matrix.Dense{}
	names := [4]string{"mean", "eigenfaces", "projections", "eigenvalues"}
	var err error
	for i := range parts {
		if parts[i], err = matrix.ReadBinary(br); err != nil {
			return nil, corruptRead(names[i], err)
		}
	}
	if parts[3].Rows() != 1 {
		return nil, corrupt("eigenvalues stored as %dx%d", parts[3].Rows(), parts[3].Cols())
	}

	var count uint64
	if err = binary.Read(br, binary.NativeEndian, &count); err != nil {
		return nil, corruptRead("label count", err)
	}
	if count != uint64(parts[2].Cols()) {
		return nil, corrupt("%d labels for %d projections", count, parts[2].Cols())
	}
	// labels grow as they arrive: a 0xN projection block carries no bytes,
	// so count alone is not backed by input
	labels := make([]string, 0, min(count, labelChunk))
	var size uint64
	for i := uint64(0); i < count; i++ {
		if err = binary.Read(br, binary.NativeEndian, &size); err != nil {
			return nil, corruptRead("label length", err)
		}
		if size > maxLabelLen {
			return nil, fmt.Errorf("%w: label %d is %d bytes", ErrCorruptDatabase, i, size)
		}
		buf := make([]byte, size)
		if _, err = io.ReadFull(br, buf); err != nil {
			return nil, corruptRead("label", err)
		}
		labels = append(labels, string(buf))
	}

	db := &Database{
		Mean:        parts[0],
		Eigenfaces:  parts[1],
		Projected:   parts[2],
		Eigenvalues: append([]float64(nil), parts[3].RawData()...),
		Labels:      labels,
	}
	if err = db.Validate(); err != nil {
		return nil, err
	}

	return db, nil
}

// corruptRead wraps a read failure; a clean EOF mid-file is reported as
// io.ErrUnexpectedEOF.
func corruptRead(what string, err error) error {
	if errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: read %s: %w", ErrCorruptDatabase, what, err)
}
