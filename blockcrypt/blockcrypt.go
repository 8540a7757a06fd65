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

// Package blockcrypt implements the light-weight stream cipher that MDX and
// MDD containers use to obscure compressed blocks.
//
// An encrypted block starts with an 8-byte header: a 4-byte compression and
// encryption descriptor followed by a 4-byte checksum. The header is stored in
// the clear. The block key is the RIPEMD-128 digest of the checksum bytes
// followed by the constant bytes 0x95 0x36 0x00 0x00.
package blockcrypt

import (
	"errors"
	"fmt"
	"hash"

	"github.com/ianlewis/go-mdict/internal/ripemd128"
)

// HeaderSize is the size of the clear-text block header.
const HeaderSize = 8

// KeySize is the size of a derived block key.
const KeySize = ripemd128.Size

// initialState seeds the running previous-byte state.
const initialState = 0x36

var keySalt = [4]byte{0x95, 0x36, 0x00, 0x00}

// ErrShortBlock indicates that a block is too short to contain a header.
var ErrShortBlock = errors.New("block too short")

// DeriveKey derives the block key from the block's header using RIPEMD-128.
func DeriveKey(block []byte) ([KeySize]byte, error) {
	var key [KeySize]byte
	k, err := DeriveKeyWith(ripemd128.New, block)
	if err != nil {
		return key, err
	}
	copy(key[:], k)
	return key, nil
}

// DeriveKeyWith derives a block key using the digest returned by newHash.
// Only bytes [4:8) of block are used.
func DeriveKeyWith(newHash func() hash.Hash, block []byte) ([]byte, error) {
	if len(block) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBlock, len(block))
	}

	msg := make([]byte, 0, 8)
	msg = append(msg, block[4:8]...)
	msg = append(msg, keySalt[:]...)

	h := newHash()
	_, _ = h.Write(msg)
	return h.Sum(nil), nil
}

// FastDecrypt decrypts data with key and returns a new slice of the same
// length. Each output byte is the nibble-swapped input byte XORed with the
// previous input byte, the low byte of its position, and the key byte at that
// position. An empty key contributes zero bytes.
func FastDecrypt(data, key []byte) []byte {
	out := make([]byte, len(data))
	prev := byte(initialState)
	for i, b := range data {
		out[i] = swapNibbles(b) ^ prev ^ byte(i) ^ keyByte(key, i)
		// The state is fed the ciphertext byte, not the plaintext byte.
		prev = b
	}
	return out
}

// FastEncrypt is the inverse of FastDecrypt.
func FastEncrypt(data, key []byte) []byte {
	out := make([]byte, len(data))
	prev := byte(initialState)
	for i, b := range data {
		out[i] = swapNibbles(b ^ prev ^ byte(i) ^ keyByte(key, i))
		prev = out[i]
	}
	return out
}

// DecryptBlock decrypts an encrypted block. The 8-byte header is copied to the
// output unchanged and the remaining bytes are decrypted with the key derived
// from the header.
func DecryptBlock(block []byte) ([]byte, error) {
	return transformBlock(block, FastDecrypt)
}

// EncryptBlock is the inverse of DecryptBlock. The header must already contain
// the checksum used for key derivation.
func EncryptBlock(block []byte) ([]byte, error) {
	return transformBlock(block, FastEncrypt)
}

func transformBlock(block []byte, fn func(data, key []byte) []byte) ([]byte, error) {
	key, err := DeriveKey(block)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(block))
	out = append(out, block[:HeaderSize]...)
	out = append(out, fn(block[HeaderSize:], key[:])...)
	return out, nil
}

func keyByte(key []byte, i int) byte {
	if len(key) == 0 {
		return 0
	}
	return key[i%len(key)]
}

func swapNibbles(b byte) byte {
	return b>>4 | b<<4
}
