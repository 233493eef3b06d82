// SPDX-License-Identifier: MIT

// Package pca trains and queries an eigenface database.
//
// Training (Train):
//
//	images (P×N, one image per column)
//	  → mean face (P×1) and centered images A
//	  → surrogate L = AᵗA (N×N)
//	  → eigenpairs of L, sorted by descending eigenvalue
//	  → eigenfaces = A·V_k, each scaled to unit length (P×K)
//	  → projections = eigenfacesᵗ·A (K×N)
//
// Recognition (Recognizer): an image is centered, projected to K
// coordinates and compared by Euclidean distance with every stored
// projection; the nearest wins, and an optional threshold turns far matches
// into "unknown".
//
// Heavy kernels run on a backend.Backend (native Jacobi/goroutines or gonum).
// Stage timings are reported to an Observer and logged with log/slog.
package pca
