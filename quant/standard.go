// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quant

// Standard is a named value range together with the pair of affine
// transforms mapping it onto [0, 255] and back.
type Standard struct {
	Name       string
	Quantize   Affine
	Dequantize Affine
}

var (
	// ZeroToOne maps [0, 1] onto [0, 255].
	ZeroToOne = Standard{
		Name:       "[0,1]",
		Quantize:   Affine{Scale: 255, Bias: 0},
		Dequantize: Affine{Scale: 1.0 / 255, Bias: 0},
	}
	// NegOneToOne maps [-1, 1] onto [0, 255].
	NegOneToOne = Standard{
		Name:       "[-1,1]",
		Quantize:   Affine{Scale: 127.5, Bias: 1},
		Dequantize: Affine{Scale: 1.0 / 127.5, Bias: -1},
	}
)

var standards = []Standard{ZeroToOne, NegOneToOne}

// LookupStandard returns the Standard with the given name.
func LookupStandard(name string) (Standard, bool) {
	for _, s := range standards {
		if s.Name == name {
			return s, true
		}
	}
	return Standard{}, false
}

// Quantizer returns the quantizing transform of s.
func (s Standard) Quantizer() Quantizer { return s.Quantize.Quantizer() }

// Dequantizer returns the dequantizing transform of s.
func (s Standard) Dequantizer() Dequantizer { return s.Dequantize.Dequantizer() }
