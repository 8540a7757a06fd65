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

// Package ripemd128 implements the RIPEMD-128 hash algorithm. MDX and MDD
// containers derive their block and key-info encryption keys with it.
package ripemd128

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// Size is the size of the checksum in bytes.
const Size = 16

// BlockSize is the block size of the hash algorithm in bytes.
const BlockSize = 64

const (
	_s0 = 0x67452301
	_s1 = 0xefcdab89
	_s2 = 0x98badcfe
	_s3 = 0x10325476
)

type digest struct {
	s  [4]uint32
	x  [BlockSize]byte
	nx int
	tc uint64
}

// New returns a new hash.Hash computing the RIPEMD-128 checksum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum returns the RIPEMD-128 checksum of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	_, _ = d.Write(data)
	var out [Size]byte
	copy(out[:], d.Sum(nil))
	return out
}

func (d *digest) Reset() {
	d.s = [4]uint32{_s0, _s1, _s2, _s3}
	d.nx = 0
	d.tc = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	nn := len(p)
	d.tc += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	n := block(d, p)
	p = p[n:]
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return nn, nil
}

func (d *digest) Sum(in []byte) []byte {
	// Work on a copy so the caller can keep writing.
	d0 := *d

	tc := d0.tc
	var tmp [64]byte
	tmp[0] = 0x80
	if tc%64 < 56 {
		_, _ = d0.Write(tmp[0 : 56-tc%64])
	} else {
		_, _ = d0.Write(tmp[0 : 64+56-tc%64])
	}

	binary.LittleEndian.PutUint64(tmp[:8], tc<<3)
	_, _ = d0.Write(tmp[0:8])

	if d0.nx != 0 {
		panic("ripemd128: d.nx != 0")
	}

	var out [Size]byte
	for i, s := range d0.s {
		binary.LittleEndian.PutUint32(out[i*4:], s)
	}
	return append(in, out[:]...)
}

// Message word selection for the left and right lines.
var (
	_n = [64]uint{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
		7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
		3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
		1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	}
	_np = [64]uint{
		5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
		6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
		15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
		8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	}
)

// Rotation amounts for the left and right lines.
var (
	_r = [64]int{
		11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
		7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
		11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
		11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	}
	_rp = [64]int{
		8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
		9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
		9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
		15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	}
)

var (
	_k  = [4]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc}
	_kp = [4]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x00000000}
)

// f is the round function for step j in [0, 64).
func f(j int, x, y, z uint32) uint32 {
	switch {
	case j < 16:
		return x ^ y ^ z
	case j < 32:
		return x&y | ^x&z
	case j < 48:
		return (x | ^y) ^ z
	default:
		return x&z | y&^z
	}
}

// block processes as many complete blocks of p as possible and returns the
// number of bytes consumed.
func block(md *digest, p []byte) int {
	n := 0
	var x [16]uint32
	for len(p) >= BlockSize {
		a, b, c, d := md.s[0], md.s[1], md.s[2], md.s[3]
		aa, bb, cc, dd := a, b, c, d
		for i := range x {
			x[i] = binary.LittleEndian.Uint32(p[i*4:])
		}

		for j := 0; j < 64; j++ {
			t := bits.RotateLeft32(a+f(j, b, c, d)+x[_n[j]]+_k[j/16], _r[j])
			a, d, c, b = d, c, b, t

			t = bits.RotateLeft32(aa+f(63-j, bb, cc, dd)+x[_np[j]]+_kp[j/16], _rp[j])
			aa, dd, cc, bb = dd, cc, bb, t
		}

		t := md.s[1] + c + dd
		md.s[1] = md.s[2] + d + aa
		md.s[2] = md.s[3] + a + bb
		md.s[3] = md.s[0] + b + cc
		md.s[0] = t

		p = p[BlockSize:]
		n += BlockSize
	}
	return n
}
