// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quant provides the transforms between float32 values and
// byte-quantized values used by quantized tensors.
//
// Quantizer and Dequantizer functions may be called concurrently from
// multiple goroutines, so they must be free of side effects.
package quant

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotRepresentable is returned by a Quantizer for input values that have
// no quantized representation, such as NaN.
var ErrNotRepresentable = errors.New("value is not representable as a quantized byte")

// Quantizer converts a float32 value to its byte-quantized form.
type Quantizer func(float32) (uint8, error)

// Dequantizer converts a byte-quantized value back to float32.
type Dequantizer func(uint8) (float32, error)

// Func adapts an infallible function to a Quantizer.
func Func(f func(float32) uint8) Quantizer {
	return func(x float32) (uint8, error) {
		return f(x), nil
	}
}

// DequantFunc adapts an infallible function to a Dequantizer.
func DequantFunc(f func(uint8) float32) Dequantizer {
	return func(b uint8) (float32, error) {
		return f(b), nil
	}
}

// Affine is a linear transform of the form (x + Bias) * Scale when
// quantizing, and b * Scale + Bias when dequantizing.
//
// The two directions generally use different Affine values: the [0,1]
// range, for example, quantizes with Scale 255 and dequantizes with
// Scale 1/255.
type Affine struct {
	Scale float32
	Bias  float32
}

// Validate returns an error if Scale is zero, or Scale or Bias are not
// finite numbers.
func (a Affine) Validate() error {
	switch {
	case !isFinite(a.Scale):
		return fmt.Errorf("invalid affine scale %g", a.Scale)
	case a.Scale == 0:
		return fmt.Errorf("affine scale must not be zero")
	case !isFinite(a.Bias):
		return fmt.Errorf("invalid affine bias %g", a.Bias)
	}
	return nil
}

// Quantize computes (x + Bias) * Scale, rounded to the nearest integer
// and clamped to [0, 255].
func (a Affine) Quantize(x float32) (uint8, error) {
	v := float64(x+a.Bias) * float64(a.Scale)
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %g", ErrNotRepresentable, x)
	}
	switch v = math.Round(v); {
	case v <= 0:
		return 0, nil
	case v >= math.MaxUint8:
		return math.MaxUint8, nil
	}
	return uint8(v), nil
}

// Dequantize computes b * Scale + Bias.
func (a Affine) Dequantize(b uint8) (float32, error) {
	return float32(b)*a.Scale + a.Bias, nil
}

// Quantizer returns a.Quantize as a Quantizer.
func (a Affine) Quantizer() Quantizer { return a.Quantize }

// Dequantizer returns a.Dequantize as a Dequantizer.
func (a Affine) Dequantizer() Dequantizer { return a.Dequantize }

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
