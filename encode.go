// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import "fmt"

// Encode converts a host Payload to a new tensor buffer.
//
// Bytes are copied according to the following rules, with information
// about quantization taken from the description:
//
//   - If the layer is unquantized, the payload's bytes are copied directly,
//     as elements of the description's DType.
//   - If the layer is quantized and no quantizer is provided, the payload's
//     bytes are copied directly, as uint8 values.
//   - If the layer is quantized and a quantizer is provided, the payload is
//     read as little-endian float32 values, each one is passed to the
//     quantizer, and the resulting bytes are written to the tensor buffer.
//
// The payload must hold exactly the element count of desc, otherwise an
// error wrapping ErrPayloadLengthMismatch is returned.
func Encode(p Payload, desc LayerDescription) ([]byte, error) {
	l, err := encodeLayout(desc)
	if err != nil {
		return nil, err
	}
	if err = l.checkPayload(p); err != nil {
		return nil, err
	}
	buf := make([]byte, l.dstLen)
	if err = l.convert(buf, p); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeInto is like Encode, but fills the caller-provided tensor buffer
// dst, whose length must be exactly the encoded length, otherwise an
// error wrapping ErrShapeMismatch is returned.
//
// dst is modified only if no error occurs.
func EncodeInto(dst []byte, p Payload, desc LayerDescription) error {
	l, err := encodeLayout(desc)
	if err != nil {
		return err
	}
	if err = l.checkPayload(p); err != nil {
		return err
	}
	if len(dst) != l.dstLen {
		return fmt.Errorf("%w: expected %d bytes (%d elements of size %d), actual %d",
			ErrShapeMismatch, l.dstLen, l.count, l.dstSize, len(dst))
	}
	if l.quantize == nil {
		return l.convert(dst, p)
	}
	// The quantizer can fail half way.
	tmp := make([]byte, l.dstLen)
	if err = l.convert(tmp, p); err != nil {
		return err
	}
	copy(dst, tmp)
	return nil
}
