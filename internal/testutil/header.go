// Copyright 2021 Google LLC
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
	"math"
	"os"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

// MakeHeaderOptions are options for building a test container header.
type MakeHeaderOptions struct {
	// UTF8 stores the header text as UTF-8 instead of UTF-16LE.
	UTF8 bool

	// BadChecksum writes an incorrect checksum.
	BadChecksum bool
}

// MakeHeader creates the header section of a test container: a big-endian
// length, the header text and a little-endian Adler-32 checksum.
func MakeHeader(t *testing.T, text string, opts *MakeHeaderOptions) []byte {
	t.Helper()
	if opts == nil {
		opts = &MakeHeaderOptions{}
	}

	raw := []byte(text + "\r\n\x00")
	if !opts.UTF8 {
		var err error
		raw, err = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes(raw)
		if err != nil {
			t.Fatal(err)
		}
	}
	if len(raw) > math.MaxUint32 {
		t.Fatalf("header too long: %d", len(raw))
	}

	checksum := adler32.Checksum(raw)
	if opts.BadChecksum {
		checksum++
	}

	b := make([]byte, 4, 4+len(raw)+4)
	//nolint:gosec // length is bounds checked above.
	binary.BigEndian.PutUint32(b, uint32(len(raw)))
	b = append(b, raw...)
	b = binary.LittleEndian.AppendUint32(b, checksum)
	return b
}

// MakeTempContainer writes a test container made of the given sections to a
// temporary file and returns its path. The file is removed when the test
// ends.
func MakeTempContainer(t *testing.T, ext string, sections ...[]byte) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "mdict.*"+ext)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, s := range sections {
		if _, err := f.Write(s); err != nil {
			t.Fatal(err)
		}
	}
	return f.Name()
}
