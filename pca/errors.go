// SPDX-License-Identifier: MIT

package pca

import "errors"

var (
	// ErrEmptyTrainingSet indicates Train was given no images (or images with no pixels).
	ErrEmptyTrainingSet = errors.New("pca: empty training set")

	// ErrLabelCount indicates the label list does not match the number of images.
	ErrLabelCount = errors.New("pca: label count does not match image count")

	// ErrImageShape indicates a query image is not a pixels×1 column of the
	// database's pixel count.
	ErrImageShape = errors.New("pca: image shape does not match database")

	// ErrCorruptDatabase indicates a database whose parts disagree in shape or
	// whose serialized form cannot be decoded.
	ErrCorruptDatabase = errors.New("pca: corrupt database")
)
