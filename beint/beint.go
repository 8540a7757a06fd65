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

// Package beint decodes the fixed-width big-endian unsigned integers used
// throughout MDX and MDD containers.
//
// Offsets and sizes in version 2 containers are stored as 64-bit values. The
// format's reference readers hold numbers in IEEE-754 doubles, so values that
// need more than 53 bits of magnitude are never produced by conforming
// writers. Decode rejects them with [ErrOverflow] instead of truncating.
package beint

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow indicates that a 64-bit value exceeds the magnitude that
	// can be represented exactly.
	ErrOverflow = errors.New("integer overflow")

	// ErrShortBuffer indicates that the input length does not match the
	// width being decoded.
	ErrShortBuffer = errors.New("wrong buffer length")

	// ErrInvalidWidth indicates an unknown Width value.
	ErrInvalidWidth = errors.New("invalid width")
)

// Width is the width of an encoded integer.
type Width int

const (
	// Width8 is an 8-bit integer.
	Width8 Width = 8

	// Width16 is a 16-bit integer.
	Width16 Width = 16

	// Width32 is a 32-bit integer.
	Width32 Width = 32

	// Width64 is a 64-bit integer with at most 53 significant bits.
	Width64 Width = 64
)

// Size returns the number of bytes used to encode an integer of width w. It
// returns zero for an invalid width.
func (w Width) Size() int {
	switch w {
	case Width8, Width16, Width32, Width64:
		return int(w) / 8
	default:
		return 0
	}
}

func (w Width) String() string {
	return fmt.Sprintf("%d-bit", int(w))
}

// Decode decodes b as a big-endian unsigned integer of width w. The length of
// b must be exactly w.Size().
func Decode(w Width, b []byte) (uint64, error) {
	switch w {
	case Width8:
		v, err := Uint8(b)
		return uint64(v), err
	case Width16:
		v, err := Uint16(b)
		return uint64(v), err
	case Width32:
		v, err := Uint32(b)
		return uint64(v), err
	case Width64:
		return Uint64(b)
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWidth, int(w))
	}
}

// Uint8 decodes a single byte.
func Uint8(b []byte) (uint8, error) {
	if err := checkLen(Width8, b); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 decodes a big-endian 16-bit integer.
func Uint16(b []byte) (uint16, error) {
	if err := checkLen(Width16, b); err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Uint32 decodes a big-endian 32-bit integer.
func Uint32(b []byte) (uint32, error) {
	if err := checkLen(Width32, b); err != nil {
		return 0, err
	}
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v, nil
}

// Uint64 decodes a big-endian 64-bit integer. Values whose first byte is
// non-zero or whose second byte is 0x20 or greater return [ErrOverflow].
func Uint64(b []byte) (uint64, error) {
	if err := checkLen(Width64, b); err != nil {
		return 0, err
	}
	if b[0] != 0 || b[1] >= 0x20 {
		return 0, fmt.Errorf("%w: % x", ErrOverflow, b)
	}

	hi := (uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3])) & 0x1fffff
	lo, _ := Uint32(b[4:])
	return hi<<32 + uint64(lo), nil
}

func checkLen(w Width, b []byte) error {
	if len(b) != w.Size() {
		return fmt.Errorf("%w: %v integer from %d bytes", ErrShortBuffer, w, len(b))
	}
	return nil
}
