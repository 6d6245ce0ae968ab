// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import (
	"fmt"

	"github.com/nlpodyssey/tensorio/dtype"
	"github.com/nlpodyssey/tensorio/quant"
)

// LayerDescription provides the facts about a model layer that drive the
// conversion between its tensor buffer and a host payload.
//
// Implementations must be safe for concurrent use; Description is the
// implementation provided by this package.
type LayerDescription interface {
	// DType is the native element type of the tensor when the layer is
	// not quantized.
	DType() dtype.DType
	// ElementCount is the number of elements of a single item, excluding
	// any batch dimension.
	ElementCount() int
	// Quantized reports whether the tensor stores 1-byte quantized values.
	Quantized() bool
	// Quantizer returns the float32 to byte transform applied on encoding,
	// or nil if payloads are already byte-valued.
	Quantizer() quant.Quantizer
	// Dequantizer returns the byte to float32 transform applied on
	// decoding, or nil if payloads should stay byte-valued.
	Dequantizer() quant.Dequantizer
}

// Quantization marks a layer as quantized, optionally carrying the
// transforms to apply on either direction.
type Quantization struct {
	Quantizer   quant.Quantizer
	Dequantizer quant.Dequantizer
}

// Description is an immutable LayerDescription.
type Description struct {
	name         string
	dType        dtype.DType
	shape        []int
	batched      bool
	elementCount int
	quantization *Quantization
}

var _ LayerDescription = Description{}

// NewDescription performs validity checks over the given properties and
// returns a Description if validation succeeds, otherwise an error
// wrapping ErrInvalidDescription.
//
// A nil q describes an unquantized layer. A non-nil q describes a
// quantized layer, whose dType must be dtype.U8.
//
// The first dimension of shape can be -1, marking a batch placeholder
// which is not part of the element count. Every other dimension must be
// at least 1. An empty shape describes a scalar.
func NewDescription(name string, dType dtype.DType, shape []int, q *Quantization) (Description, error) {
	if err := dType.Validate(); err != nil {
		return Description{}, fmt.Errorf("%w: layer %q: %w", ErrInvalidDescription, name, err)
	}
	if q != nil && dType != dtype.U8 {
		return Description{}, fmt.Errorf("%w: layer %q: quantized layers must be %s, actual %s", ErrInvalidDescription, name, dtype.U8, dType)
	}
	count, batched, err := elementCountFromShape(shape)
	if err != nil {
		return Description{}, fmt.Errorf("%w: layer %q: %w", ErrInvalidDescription, name, err)
	}
	if _, err = checkedMul(count, dType.Size()); err != nil {
		return Description{}, fmt.Errorf("%w: layer %q: byte size: %w", ErrInvalidDescription, name, err)
	}

	d := Description{
		name:         name,
		dType:        dType,
		shape:        copyShape(shape),
		batched:      batched,
		elementCount: count,
	}
	if q != nil {
		qc := *q
		d.quantization = &qc
	}
	return d, nil
}

func elementCountFromShape(shape []int) (count int, batched bool, err error) {
	count = 1
	for i, v := range shape {
		if i == 0 && v == -1 {
			batched = true
			continue
		}
		if v < 1 {
			return 0, false, fmt.Errorf("invalid dimension %d at index %d", v, i)
		}
		if count, err = checkedMul(count, v); err != nil {
			return 0, false, fmt.Errorf("element count: %w", err)
		}
	}
	return count, batched, nil
}

func copyShape(shape []int) []int {
	if len(shape) == 0 {
		return nil
	}
	return append(make([]int, 0, len(shape)), shape...)
}

// The Name of the layer.
func (d Description) Name() string { return d.name }

// DType returns the native element type of the tensor.
func (d Description) DType() dtype.DType { return d.dType }

// The Shape of the layer, including the batch placeholder if present.
// A new slice is returned on each call.
func (d Description) Shape() []int { return copyShape(d.shape) }

// Batched reports whether the shape starts with a -1 batch placeholder.
func (d Description) Batched() bool { return d.batched }

// ElementCount returns the number of elements of a single item.
func (d Description) ElementCount() int { return d.elementCount }

// ByteSize returns the length of the tensor buffer of a single item.
func (d Description) ByteSize() int { return d.elementCount * d.dType.Size() }

// Quantized reports whether the layer is quantized.
func (d Description) Quantized() bool { return d.quantization != nil }

// Quantizer returns the quantizing transform, or nil.
func (d Description) Quantizer() quant.Quantizer {
	if d.quantization == nil {
		return nil
	}
	return d.quantization.Quantizer
}

// Dequantizer returns the dequantizing transform, or nil.
func (d Description) Dequantizer() quant.Dequantizer {
	if d.quantization == nil {
		return nil
	}
	return d.quantization.Dequantizer
}
