// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import "errors"

// Every error returned by this package wraps exactly one of the following
// values, and can be tested with errors.Is.
var (
	// ErrShapeMismatch reports a tensor buffer whose length is inconsistent
	// with the layout implied by the layer description.
	ErrShapeMismatch = errors.New("tensor buffer shape mismatch")
	// ErrPayloadLengthMismatch reports a host payload whose length does not
	// match the element width and count of the active conversion.
	ErrPayloadLengthMismatch = errors.New("payload length mismatch")
	// ErrInvalidDescription reports a missing or self-contradictory layer
	// description, including a failing quantizer or dequantizer.
	ErrInvalidDescription = errors.New("invalid layer description")
	// ErrEmptyBatch reports a batch column without items.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrBatchShapeMismatch reports a batch column whose items do not all
	// have the same length.
	ErrBatchShapeMismatch = errors.New("batch shape mismatch")
)
