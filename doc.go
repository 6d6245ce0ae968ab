// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensorio converts data between the flat tensor buffers of an
// inference engine and the untyped payloads handled by host code.
//
// A LayerDescription tells how the bytes are laid out on either side:
// the native element type of the tensor, the number of elements, and
// whether the tensor is byte-quantized, in which case a quantizer and a
// dequantizer can be supplied to convert float32 host values.
//
// All functions are pure and safe for concurrent use.
package tensorio
