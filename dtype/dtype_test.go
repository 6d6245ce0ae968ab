// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtype

import (
	"encoding"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ json.Marshaler           = DType(0)
	_ json.Unmarshaler         = new(DType)
	_ encoding.TextMarshaler   = DType(0)
	_ encoding.TextUnmarshaler = new(DType)
)

var (
	validValues = []struct {
		dType  DType
		size   int
		float  bool
		string string
	}{
		{Bool, 1, false, "BOOL"},
		{U8, 1, false, "U8"},
		{I8, 1, false, "I8"},
		{U16, 2, false, "U16"},
		{I16, 2, false, "I16"},
		{F16, 2, true, "F16"},
		{BF16, 2, true, "BF16"},
		{U32, 4, false, "U32"},
		{I32, 4, false, "I32"},
		{F32, 4, true, "F32"},
		{U64, 8, false, "U64"},
		{I64, 8, false, "I64"},
		{F64, 8, true, "F64"},
	}
	invalidValues = []DType{0, 14, 15, 16, 254, 255}
)

func TestDType_Validate(t *testing.T) {
	for _, tc := range validValues {
		assert.NoError(t, tc.dType.Validate())
	}
	for _, dt := range invalidValues {
		assert.EqualError(t, dt.Validate(), fmt.Sprintf("invalid DType(%d)", dt))
	}
}

func TestDType_Properties(t *testing.T) {
	for _, tc := range validValues {
		t.Run(tc.string, func(t *testing.T) {
			assert.Equal(t, tc.string, tc.dType.String())
			assert.Equal(t, tc.size, tc.dType.Size())
			assert.Equal(t, tc.float, tc.dType.IsFloat())
		})
	}
	for _, dt := range invalidValues {
		assert.Equal(t, fmt.Sprintf("invalid DType(%d)", dt), dt.String())
		assert.Equal(t, -1, dt.Size())
		assert.False(t, dt.IsFloat())
	}
}

func TestParse(t *testing.T) {
	for _, tc := range validValues {
		dt, err := Parse(tc.string)
		require.NoError(t, err)
		assert.Equal(t, tc.dType, dt)
	}
	_, err := Parse("f32")
	assert.EqualError(t, err, `unknown DType "f32"`)
}

func TestDType_JSON(t *testing.T) {
	for _, tc := range validValues {
		b, err := tc.dType.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `"`+tc.string+`"`, string(b))

		var dt DType
		require.NoError(t, dt.UnmarshalJSON(b))
		assert.Equal(t, tc.dType, dt)
	}

	for _, dt := range invalidValues {
		b, err := dt.MarshalJSON()
		assert.EqualError(t, err, fmt.Sprintf("invalid DType(%d)", dt))
		assert.Nil(t, b)
	}

	var dt DType
	assert.EqualError(t, dt.UnmarshalJSON(nil), `failed to JSON-unmarshal DType from value ""`)
	assert.EqualError(t, dt.UnmarshalJSON([]byte("F32")), `failed to JSON-unmarshal DType from value "F32"`)
	assert.EqualError(t, dt.UnmarshalJSON([]byte(`"foo"`)), `failed to JSON-unmarshal DType from value "\"foo\""`)
}

func TestDType_Text(t *testing.T) {
	for _, tc := range validValues {
		b, err := tc.dType.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, tc.string, string(b))

		var dt DType
		require.NoError(t, dt.UnmarshalText(b))
		assert.Equal(t, tc.dType, dt)
	}

	var dt DType
	assert.EqualError(t, dt.UnmarshalText([]byte{}), `failed to text-unmarshal DType from value ""`)
	assert.EqualError(t, dt.UnmarshalText([]byte(`"U8"`)), `failed to text-unmarshal DType from value "\"U8\""`)
}

func TestDType_JSONInStruct(t *testing.T) {
	var v struct {
		DType DType `json:"dtype"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dtype":"BF16"}`), &v))
	assert.Equal(t, BF16, v.DType)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dtype":"BF16"}`, string(b))
}
