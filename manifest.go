// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nlpodyssey/tensorio/dtype"
	"github.com/nlpodyssey/tensorio/quant"
)

// layerEntry is the JSON form of a layer within a model manifest:
//
//	{
//	  "name": "image",
//	  "shape": [-1, 224, 224, 3],
//	  "dtype": "U8",
//	  "quantize": {"standard": "[0,1]"}
//	}
//
// The layer is quantized if "quantized" is true, or if either a
// "quantize" or a "dequantize" block is present.
type layerEntry struct {
	Name       string        `json:"name"`
	Shape      []int         `json:"shape"`
	DType      dtype.DType   `json:"dtype"`
	Quantized  bool          `json:"quantized"`
	Quantize   *quant.Params `json:"quantize"`
	Dequantize *quant.Params `json:"dequantize"`
}

// ParseDescription decodes a single JSON layer entry of a model manifest.
//
// The "dtype" field is required.
func ParseDescription(data []byte) (Description, error) {
	var e layerEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return Description{}, fmt.Errorf("%w: failed to JSON-decode layer: %w", ErrInvalidDescription, err)
	}
	return e.description()
}

// ParseDescriptions decodes a JSON array of layer entries.
// Layer names must be unique.
func ParseDescriptions(data []byte) ([]Description, error) {
	var entries []layerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: failed to JSON-decode layers: %w", ErrInvalidDescription, err)
	}
	seen := make(map[string]struct{}, len(entries))
	out := make([]Description, len(entries))
	for i, e := range entries {
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate layer name %q", ErrInvalidDescription, e.Name)
		}
		seen[e.Name] = struct{}{}

		var err error
		if out[i], err = e.description(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e layerEntry) description() (Description, error) {
	if e.DType == 0 {
		return Description{}, fmt.Errorf("%w: layer %q: missing dtype", ErrInvalidDescription, e.Name)
	}
	q, err := e.quantization()
	if err != nil {
		return Description{}, fmt.Errorf("%w: layer %q: %w", ErrInvalidDescription, e.Name, err)
	}
	return NewDescription(e.Name, e.DType, e.Shape, q)
}

func (e layerEntry) quantization() (*Quantization, error) {
	if !e.Quantized && e.Quantize == nil && e.Dequantize == nil {
		return nil, nil
	}
	q := new(Quantization)
	if e.Quantize != nil {
		f, err := e.Quantize.Quantizer()
		if err != nil {
			return nil, fmt.Errorf("quantize: %w", err)
		}
		q.Quantizer = f
	}
	if e.Dequantize != nil {
		f, err := e.Dequantize.Dequantizer()
		if err != nil {
			return nil, fmt.Errorf("dequantize: %w", err)
		}
		q.Dequantizer = f
	}
	return q, nil
}
