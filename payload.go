// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import (
	"encoding/binary"
	"fmt"

	"github.com/nlpodyssey/tensorio/dtype"
	"github.com/nlpodyssey/tensorio/float16"
)

// Payload is the host-side representation of the data of a single item:
// a flat sequence of little-endian values.
//
// A Payload does not record its element type. It is interpreted by the
// LayerDescription paired with it at conversion time.
type Payload []byte

// Element is the set of Go types a Payload can be built from or read as.
//
// Each type corresponds to a dtype.DType:
//
//	DType | Go type
//	------+---------------
//	Bool  | bool
//	U8    | uint8
//	I8    | int8
//	U16   | uint16
//	I16   | int16
//	F16   | float16.F16
//	BF16  | float16.BF16
//	U32   | uint32
//	I32   | int32
//	F32   | float32
//	U64   | uint64
//	I64   | int64
//	F64   | float64
type Element interface {
	bool | uint8 | int8 | uint16 | int16 | float16.F16 | float16.BF16 |
		uint32 | int32 | float32 | uint64 | int64 | float64
}

type realNumber interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | float32 | uint64 | int64 | float64
}

// NewPayload packs values into a new Payload.
func NewPayload[T Element](values []T) Payload {
	var zero T
	buf := make([]byte, 0, len(values)*binary.Size(zero))
	p, err := binary.Append(buf, binary.LittleEndian, values)
	if err != nil {
		// Every Element type has a fixed size.
		panic(err)
	}
	return p
}

// Values unpacks p as a slice of T.
//
// The length of p must be a multiple of the size of T, otherwise an error
// wrapping ErrPayloadLengthMismatch is returned.
func Values[T Element](p Payload) ([]T, error) {
	var zero T
	size := binary.Size(zero)
	if len(p)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %T size %d", ErrPayloadLengthMismatch, len(p), zero, size)
	}
	out := make([]T, len(p)/size)
	if _, err := binary.Decode(p, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("failed to decode %T values: %w", zero, err)
	}
	return out, nil
}

// Float32s unpacks p as values of the given type, widening them to float32.
//
// It is typically used on the payload returned by Decode, with the DType
// of the description (or dtype.F32 when a dequantizer was applied).
func (p Payload) Float32s(dt dtype.DType) ([]float32, error) {
	switch dt {
	case dtype.F32:
		return Values[float32](p)
	case dtype.F16:
		return widen(p, float16.F16.Float32)
	case dtype.BF16:
		return widen(p, float16.BF16.Float32)
	case dtype.F64:
		return convert[float64](p)
	case dtype.U8:
		return convert[uint8](p)
	case dtype.I8:
		return convert[int8](p)
	case dtype.U16:
		return convert[uint16](p)
	case dtype.I16:
		return convert[int16](p)
	case dtype.U32:
		return convert[uint32](p)
	case dtype.I32:
		return convert[int32](p)
	case dtype.U64:
		return convert[uint64](p)
	case dtype.I64:
		return convert[int64](p)
	}
	return nil, fmt.Errorf("cannot read %s payload as float32 values", dt)
}

func convert[T realNumber](p Payload) ([]float32, error) {
	return widen(p, func(v T) float32 { return float32(v) })
}

func widen[T Element](p Payload, f func(T) float32) ([]float32, error) {
	values, err := Values[T](p)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = f(v)
	}
	return out, nil
}
