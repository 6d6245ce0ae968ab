// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nlpodyssey/tensorio/quant"
)

const float32Size = 4

// layout is the element-level plan of a single conversion, resolved once
// from a LayerDescription.
//
// Source elements are srcSize bytes wide and destination elements are
// dstSize bytes wide. When neither transform is set, source bytes are
// copied unchanged and srcSize equals dstSize.
type layout struct {
	count      int
	srcSize    int
	dstSize    int
	srcLen     int
	dstLen     int
	quantize   quant.Quantizer
	dequantize quant.Dequantizer
}

// decodeLayout resolves the tensor buffer to payload direction:
//   - unquantized: native elements are copied as they are
//   - quantized without dequantizer: bytes are copied as they are
//   - quantized with dequantizer: each byte becomes a float32
func decodeLayout(desc LayerDescription) (layout, error) {
	count, err := checkDescription(desc)
	if err != nil {
		return layout{}, err
	}
	switch dq := desc.Dequantizer(); {
	case !desc.Quantized():
		return newLayout(count, desc.DType().Size(), desc.DType().Size())
	case dq == nil:
		return newLayout(count, 1, 1)
	default:
		l, err := newLayout(count, 1, float32Size)
		l.dequantize = dq
		return l, err
	}
}

// encodeLayout resolves the payload to tensor buffer direction:
//   - unquantized: native elements are copied as they are
//   - quantized without quantizer: bytes are copied as they are
//   - quantized with quantizer: each float32 becomes a byte
func encodeLayout(desc LayerDescription) (layout, error) {
	count, err := checkDescription(desc)
	if err != nil {
		return layout{}, err
	}
	switch q := desc.Quantizer(); {
	case !desc.Quantized():
		return newLayout(count, desc.DType().Size(), desc.DType().Size())
	case q == nil:
		return newLayout(count, 1, 1)
	default:
		l, err := newLayout(count, float32Size, 1)
		l.quantize = q
		return l, err
	}
}

func checkDescription(desc LayerDescription) (int, error) {
	if desc == nil {
		return 0, fmt.Errorf("%w: missing layer description", ErrInvalidDescription)
	}
	count := desc.ElementCount()
	if count < 1 {
		return 0, fmt.Errorf("%w: element count must be positive, actual %d", ErrInvalidDescription, count)
	}
	if !desc.Quantized() {
		if err := desc.DType().Validate(); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
		}
	}
	return count, nil
}

func newLayout(count, srcSize, dstSize int) (layout, error) {
	srcLen, err := checkedMul(count, srcSize)
	if err != nil {
		return layout{}, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}
	dstLen, err := checkedMul(count, dstSize)
	if err != nil {
		return layout{}, fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}
	return layout{
		count:   count,
		srcSize: srcSize,
		dstSize: dstSize,
		srcLen:  srcLen,
		dstLen:  dstLen,
	}, nil
}

// checkPayload verifies that p holds exactly l.count source elements.
func (l layout) checkPayload(p Payload) error {
	if len(p)%l.srcSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of element size %d", ErrPayloadLengthMismatch, len(p), l.srcSize)
	}
	if n := len(p) / l.srcSize; n != l.count {
		return fmt.Errorf("%w: expected %d elements, actual %d", ErrPayloadLengthMismatch, l.count, n)
	}
	return nil
}

// convert writes the converted content of src into dst.
// The lengths of src and dst must be l.srcLen and l.dstLen respectively.
func (l layout) convert(dst, src []byte) error {
	switch {
	case l.quantize != nil:
		return l.quantizeAll(dst, src)
	case l.dequantize != nil:
		return l.dequantizeAll(dst, src)
	}
	copy(dst, src)
	return nil
}

func (l layout) quantizeAll(dst, src []byte) error {
	for i := range dst {
		x := math.Float32frombits(binary.LittleEndian.Uint32(src[i*float32Size:]))
		b, err := l.quantize(x)
		if err != nil {
			return fmt.Errorf("%w: quantizer failed on element %d: %w", ErrInvalidDescription, i, err)
		}
		dst[i] = b
	}
	return nil
}

func (l layout) dequantizeAll(dst, src []byte) error {
	for i, b := range src {
		x, err := l.dequantize(b)
		if err != nil {
			return fmt.Errorf("%w: dequantizer failed on element %d: %w", ErrInvalidDescription, i, err)
		}
		binary.LittleEndian.PutUint32(dst[i*float32Size:], math.Float32bits(x))
	}
	return nil
}
