// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import "fmt"

// Decode converts the content of a tensor buffer to a new host Payload.
//
// Bytes are copied according to the following rules, with information
// about quantization taken from the description:
//
//   - If the layer is unquantized, the tensor's bytes are copied directly,
//     as elements of the description's DType.
//   - If the layer is quantized and no dequantizer is provided, the
//     tensor's bytes are copied directly, as uint8 values.
//   - If the layer is quantized and a dequantizer is provided, each byte
//     of the tensor is passed to the dequantizer, and the resulting float32
//     values are written to the payload in little-endian order. The payload
//     is then four times as long as the tensor buffer.
//
// The length of buf must match the element count and element size implied
// by desc, otherwise an error wrapping ErrShapeMismatch is returned.
// buf is never modified.
func Decode(buf []byte, desc LayerDescription) (Payload, error) {
	l, err := decodeLayout(desc)
	if err != nil {
		return nil, err
	}
	if len(buf) != l.srcLen {
		return nil, fmt.Errorf("%w: expected %d bytes (%d elements of size %d), actual %d",
			ErrShapeMismatch, l.srcLen, l.count, l.srcSize, len(buf))
	}
	p := make(Payload, l.dstLen)
	if err = l.convert(p, buf); err != nil {
		return nil, err
	}
	return p, nil
}
