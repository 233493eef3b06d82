// SPDX-License-Identifier: MIT

// Package eigenface is a face-recognition toolkit built on principal
// component analysis: train a database of "eigenfaces" from a set of
// images, then match new images to their nearest training image in the
// low-dimensional eigenspace.
//
// What is inside?
//
//	A library that brings together:
//		• Dense matrices with explicit, typed errors and no hidden aliasing
//		• Kernels: transpose-aware multiply, column mean/subtract, AᵗA surrogate
//		• A cyclic Jacobi eigensolver for symmetric matrices
//		• Interchangeable backends: native (parallel) and gonum
//		• The PCA pipeline: train, project, reconstruct, recognize
//		• PPM/PGM ingestion and export, text/binary matrix formats
//		• Database persistence on local disk or MinIO/S3
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/             Dense type, kernels, eigensolver, codecs
//	backend/            kernel backends (native, gonum)
//	pca/                training, recognition, database format
//	ppm/                Netpbm image decode/encode
//	store/              database stores (file, minio)
//	internal/config     viper + validator configuration
//	internal/logging    slog + lumberjack logger
//	internal/metrics    prometheus pipeline observer
//	cmd/eigenface/      command-line front end
//
// The trick that makes it tractable:
//
//	With N training images of P pixels (N ≪ P) the covariance A·Aᵗ is P×P.
//	Its non-zero eigenpairs are recovered from the N×N surrogate AᵗA:
//	if AᵗA·v = λv then A·Aᵗ·(Av) = λ(Av), so eigenfaces are A·v, normalized.
//
//	go install github.com/katalvlaran/eigenface/cmd/eigenface@latest
package eigenface
