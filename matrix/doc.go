// SPDX-License-Identifier: MIT

// Package matrix is the dense linear-algebra kernel layer of eigenface.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix that owns its buffer (element [r][c]
//     lives at offset r*cols+c). Zero-sized shapes are legal.
//   - Allocation with an explicit InitMode (Uninitialized or ZeroFilled).
//   - Kernels: Multiply with an independent Orientation per operand,
//     SubtractColumn/AddColumn, MeanColumn, Copy.
//   - SurrogateCovariance, which builds AᵗA from the upper triangle only.
//   - EigenSym, a cyclic Jacobi eigensolver for symmetric matrices.
//   - Text and binary codecs (WriteText/ReadText, WriteBinary/ReadBinary).
//   - Row-partitioned parallel variants of the hot kernels (errgroup).
//
// Numeric type: every kernel computes in float64. This is the single
// precision choice of the module; there is no float32 variant.
//
// Errors are package sentinels (see errors.go) wrapped with the operation
// name; match them with errors.Is.
package matrix
