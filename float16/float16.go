// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package float16

import (
	"math"

	half "github.com/x448/float16"
)

// F16 is a 16-bit half-precision floating-point value,
// represented as raw bits (uint16).
type F16 uint16

// BF16 is a 16-bit brain floating-point value,
// represented as raw bits (uint16).
type BF16 uint16

// F16FromFloat32 converts f to the nearest half-precision value.
func F16FromFloat32(f float32) F16 {
	return F16(half.Fromfloat32(f).Bits())
}

// Float32 widens the half-precision value to float32. It is exact.
func (v F16) Float32() float32 {
	return half.Frombits(uint16(v)).Float32()
}

// BF16FromFloat32 truncates f to a brain floating-point value.
func BF16FromFloat32(f float32) BF16 {
	return BF16(math.Float32bits(f) >> 16)
}

// Float32 widens the brain floating-point value to float32. It is exact.
func (v BF16) Float32() float32 {
	return math.Float32frombits(uint32(v) << 16)
}
