// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quant

import "fmt"

// Params describes a quantization transform as found in the "quantize" and
// "dequantize" blocks of a model manifest.
//
// Exactly one form must be used: either a Standard range name, such as
//
//	{"standard": "[0,1]"}
//
// or an explicit affine transform, with both Scale and Bias:
//
//	{"scale": 255, "bias": 0}
type Params struct {
	Standard string   `json:"standard,omitempty"`
	Scale    *float32 `json:"scale,omitempty"`
	Bias     *float32 `json:"bias,omitempty"`
}

// Quantizer resolves p to a Quantizer.
func (p Params) Quantizer() (Quantizer, error) {
	if p.Standard != "" {
		s, err := p.standard()
		if err != nil {
			return nil, err
		}
		return s.Quantizer(), nil
	}
	a, err := p.affine()
	if err != nil {
		return nil, err
	}
	return a.Quantizer(), nil
}

// Dequantizer resolves p to a Dequantizer.
func (p Params) Dequantizer() (Dequantizer, error) {
	if p.Standard != "" {
		s, err := p.standard()
		if err != nil {
			return nil, err
		}
		return s.Dequantizer(), nil
	}
	a, err := p.affine()
	if err != nil {
		return nil, err
	}
	return a.Dequantizer(), nil
}

func (p Params) standard() (Standard, error) {
	if p.Scale != nil || p.Bias != nil {
		return Standard{}, fmt.Errorf("standard range %q cannot be combined with scale or bias", p.Standard)
	}
	s, ok := LookupStandard(p.Standard)
	if !ok {
		return Standard{}, fmt.Errorf("unknown standard range %q", p.Standard)
	}
	return s, nil
}

func (p Params) affine() (Affine, error) {
	if p.Scale == nil || p.Bias == nil {
		return Affine{}, fmt.Errorf("quantization params require either a standard range or both scale and bias")
	}
	a := Affine{Scale: *p.Scale, Bias: *p.Bias}
	if err := a.Validate(); err != nil {
		return Affine{}, err
	}
	return a, nil
}
