// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package beint

import (
	"fmt"
	"io"
)

// Reader reads consecutive integers of varying width from a byte slice.
type Reader struct {
	b   []byte
	off int
}

// NewReader returns a Reader over b. The Reader does not modify b.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Read decodes the next integer of width w. It returns [io.ErrUnexpectedEOF]
// if fewer than w.Size() bytes remain.
func (r *Reader) Read(w Width) (uint64, error) {
	n := w.Size()
	if n == 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWidth, int(w))
	}
	if r.Len() < n {
		return 0, fmt.Errorf("reading %v integer at offset %d: %w", w, r.off, io.ErrUnexpectedEOF)
	}

	v, err := Decode(w, r.b[r.off:r.off+n])
	if err != nil {
		return 0, fmt.Errorf("reading %v integer at offset %d: %w", w, r.off, err)
	}
	r.off += n
	return v, nil
}

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int {
	return r.off
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.b) - r.off
}
