// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorio

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EncodeBatch converts a column of host payloads to a single tensor buffer
// with a leading batch dimension.
//
// Each item is encoded following the same rules as Encode, and its bytes
// are written to the i-th region of the returned buffer, whose length is
// len(column) times the encoded length of one item.
//
// All items must have the same length, otherwise an error wrapping
// ErrBatchShapeMismatch is returned. An empty column results in an error
// wrapping ErrEmptyBatch. If any item fails to encode, the error is
// returned and no buffer is produced.
//
// When the layer has a quantizer, items are encoded concurrently.
func EncodeBatch(column []Payload, desc LayerDescription) ([]byte, error) {
	if len(column) == 0 {
		return nil, fmt.Errorf("%w: no items to encode", ErrEmptyBatch)
	}
	l, err := encodeLayout(desc)
	if err != nil {
		return nil, err
	}
	itemLen := len(column[0])
	for i, p := range column[1:] {
		if len(p) != itemLen {
			return nil, fmt.Errorf("%w: item %d has %d bytes, item 0 has %d",
				ErrBatchShapeMismatch, i+1, len(p), itemLen)
		}
	}
	if err = l.checkPayload(column[0]); err != nil {
		return nil, fmt.Errorf("invalid batch items: %w", err)
	}

	size, err := checkedMul(len(column), l.dstLen)
	if err != nil {
		return nil, fmt.Errorf("%w: batch byte size: %w", ErrInvalidDescription, err)
	}
	buf := make([]byte, size)

	if l.quantize == nil {
		for i, p := range column {
			copy(buf[i*l.dstLen:], p)
		}
		return buf, nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range column {
		region := buf[i*l.dstLen : (i+1)*l.dstLen]
		g.Go(func() error {
			if err := l.convert(region, p); err != nil {
				return fmt.Errorf("failed to encode batch item %d: %w", i, err)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}
