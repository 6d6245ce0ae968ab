// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpodyssey/tensorio/dtype"
)

func TestParseDescription(t *testing.T) {
	t.Run("unquantized", func(t *testing.T) {
		d, err := ParseDescription([]byte(`{"name":"logits","shape":[-1,10],"dtype":"F32"}`))
		require.NoError(t, err)
		assert.Equal(t, "logits", d.Name())
		assert.Equal(t, dtype.F32, d.DType())
		assert.Equal(t, []int{-1, 10}, d.Shape())
		assert.True(t, d.Batched())
		assert.Equal(t, 10, d.ElementCount())
		assert.False(t, d.Quantized())
	})

	t.Run("standard quantizer", func(t *testing.T) {
		d, err := ParseDescription([]byte(`{
			"name": "image",
			"shape": [2, 2],
			"dtype": "U8",
			"quantize": {"standard": "[0,1]"}
		}`))
		require.NoError(t, err)
		assert.True(t, d.Quantized())
		assert.Nil(t, d.Dequantizer())

		buf, err := Encode(NewPayload([]float32{0, 0.5, 1, 2}), d)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 128, 255, 255}, buf)
	})

	t.Run("affine dequantizer", func(t *testing.T) {
		d, err := ParseDescription([]byte(`{
			"name": "scores",
			"shape": [3],
			"dtype": "U8",
			"dequantize": {"scale": 0.5, "bias": -1}
		}`))
		require.NoError(t, err)
		assert.True(t, d.Quantized())
		assert.Nil(t, d.Quantizer())

		p, err := Decode([]byte{0, 2, 10}, d)
		require.NoError(t, err)
		values, err := p.Float32s(dtype.F32)
		require.NoError(t, err)
		assert.Equal(t, []float32{-1, 0, 4}, values)
	})

	t.Run("quantized pass-through", func(t *testing.T) {
		d, err := ParseDescription([]byte(`{"name":"mask","shape":[4],"dtype":"U8","quantized":true}`))
		require.NoError(t, err)
		assert.True(t, d.Quantized())
		assert.Nil(t, d.Quantizer())
		assert.Nil(t, d.Dequantizer())
	})
}

func TestParseDescription_Failure(t *testing.T) {
	testCases := []struct {
		name string
		json string
		err  string
	}{
		{
			"missing dtype",
			`{"name":"a","shape":[1]}`,
			`invalid layer description: layer "a": missing dtype`,
		},
		{
			"quantized float",
			`{"name":"a","shape":[1],"dtype":"F32","quantize":{"standard":"[0,1]"}}`,
			`invalid layer description: layer "a": quantized layers must be U8, actual F32`,
		},
		{
			"bad quantize block",
			`{"name":"a","shape":[1],"dtype":"U8","quantize":{"scale":2}}`,
			`invalid layer description: layer "a": quantize: quantization params require either a standard range or both scale and bias`,
		},
		{
			"bad dequantize block",
			`{"name":"a","shape":[1],"dtype":"U8","dequantize":{"standard":"[0,9]"}}`,
			`invalid layer description: layer "a": dequantize: unknown standard range "[0,9]"`,
		},
		{
			"bad shape",
			`{"name":"a","shape":[0],"dtype":"U8"}`,
			`invalid layer description: layer "a": invalid dimension 0 at index 0`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDescription([]byte(tc.json))
			assert.ErrorIs(t, err, ErrInvalidDescription)
			assert.EqualError(t, err, tc.err)
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseDescription([]byte(`{"name":`))
		assert.ErrorIs(t, err, ErrInvalidDescription)
	})

	t.Run("unknown dtype", func(t *testing.T) {
		_, err := ParseDescription([]byte(`{"name":"a","shape":[1],"dtype":"F8"}`))
		assert.ErrorIs(t, err, ErrInvalidDescription)
	})
}

func TestParseDescriptions(t *testing.T) {
	ds, err := ParseDescriptions([]byte(`[
		{"name": "image", "shape": [-1, 8, 8, 3], "dtype": "U8", "quantize": {"standard": "[-1,1]"}},
		{"name": "label", "shape": [-1, 1], "dtype": "I64"}
	]`))
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "image", ds[0].Name())
	assert.Equal(t, 192, ds[0].ElementCount())
	assert.Equal(t, "label", ds[1].Name())
	assert.Equal(t, dtype.I64, ds[1].DType())

	_, err = ParseDescriptions([]byte(`[
		{"name": "x", "shape": [1], "dtype": "F32"},
		{"name": "x", "shape": [2], "dtype": "F32"}
	]`))
	assert.ErrorIs(t, err, ErrInvalidDescription)
	assert.EqualError(t, err, `invalid layer description: duplicate layer name "x"`)
}
