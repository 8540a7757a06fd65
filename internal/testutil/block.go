// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"encoding/binary"
	"hash/adler32"
	"testing"

	"github.com/ianlewis/go-mdict/blockcrypt"
)

// MakeBlock builds an encrypted block: a little-endian descriptor, the
// big-endian Adler-32 checksum of payload and the encrypted payload.
func MakeBlock(t *testing.T, descriptor uint32, payload []byte) []byte {
	t.Helper()

	b := make([]byte, 0, blockcrypt.HeaderSize+len(payload))
	b = binary.LittleEndian.AppendUint32(b, descriptor)
	b = binary.BigEndian.AppendUint32(b, adler32.Checksum(payload))
	b = append(b, payload...)

	enc, err := blockcrypt.EncryptBlock(b)
	if err != nil {
		t.Fatal(err)
	}
	return enc
}
