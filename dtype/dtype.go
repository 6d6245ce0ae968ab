// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype provides the element types a tensor buffer can hold.
package dtype

import (
	"fmt"
)

// DType is the native element type of a tensor.
//
// The zero value is not a valid DType: a layer description must always
// state its element type explicitly.
type DType uint8

const (
	// Bool represents an 8-bit boolean data type.
	Bool DType = iota + 1
	// U8 represents an 8-bit unsigned integer data type.
	// It is also the storage type of quantized tensors.
	U8
	// I8 represents an 8-bit signed integer data type.
	I8
	// U16 represents a 16-bit unsigned integer data type.
	U16
	// I16 represents a 16-bit signed integer data type.
	I16
	// F16 represents a 16-bit half-precision floating point data type.
	F16
	// BF16 represents a 16-bit brain floating point data type.
	BF16
	// U32 represents a 32-bit unsigned integer data type.
	U32
	// I32 represents a 32-bit signed integer data type.
	I32
	// F32 represents a 32-bit floating point data type.
	F32
	// U64 represents a 64-bit unsigned integer data type.
	U64
	// I64 represents a 64-bit signed integer data type.
	I64
	// F64 represents a 64-bit floating point data type.
	F64
)

type properties struct {
	name  string
	size  int
	float bool
}

var table = [...]properties{
	Bool: {"BOOL", 1, false},
	U8:   {"U8", 1, false},
	I8:   {"I8", 1, false},
	U16:  {"U16", 2, false},
	I16:  {"I16", 2, false},
	F16:  {"F16", 2, true},
	BF16: {"BF16", 2, true},
	U32:  {"U32", 4, false},
	I32:  {"I32", 4, false},
	F32:  {"F32", 4, true},
	U64:  {"U64", 8, false},
	I64:  {"I64", 8, false},
	F64:  {"F64", 8, true},
}

// Validate returns an error if the DType is not valid, otherwise nil.
func (dt DType) Validate() error {
	if dt == 0 || dt > F64 {
		return fmt.Errorf("invalid DType(%d)", dt)
	}
	return nil
}

// String returns a string representation of a DType.
func (dt DType) String() string {
	if err := dt.Validate(); err != nil {
		return err.Error()
	}
	return table[dt].name
}

// Size returns the size in bytes of one element of this data type,
// or -1 if the DType value is invalid.
func (dt DType) Size() int {
	if err := dt.Validate(); err != nil {
		return -1
	}
	return table[dt].size
}

// IsFloat reports whether dt is a floating point type.
func (dt DType) IsFloat() bool {
	return dt.Validate() == nil && table[dt].float
}

// Parse returns the DType named s ("F32", "U8", ...).
func Parse(s string) (DType, error) {
	for dt := Bool; dt <= F64; dt++ {
		if table[dt].name == s {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown DType %q", s)
}

// MarshalJSON satisfies json.Marshaler interface.
func (dt DType) MarshalJSON() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + table[dt].name + `"`), nil
}

// UnmarshalJSON satisfies json.Unmarshaler interface.
func (dt *DType) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("failed to JSON-unmarshal DType from value %q", b)
	}
	v, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return fmt.Errorf("failed to JSON-unmarshal DType from value %q", b)
	}
	*dt = v
	return nil
}

// MarshalText satisfies encoding.TextMarshaler interface.
func (dt DType) MarshalText() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(table[dt].name), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler interface.
func (dt *DType) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("failed to text-unmarshal DType from value %q", text)
	}
	*dt = v
	return nil
}
