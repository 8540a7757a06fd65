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

package mdict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/adler32"
	"io"

	"github.com/ianlewis/go-mdict/beint"
	"github.com/ianlewis/go-mdict/header"
)

// MaxHeaderSize is the largest header ReadHeader accepts.
const MaxHeaderSize = 16 << 20

var (
	// ErrChecksum indicates that the header checksum does not match.
	ErrChecksum = errors.New("header checksum mismatch")

	// ErrHeaderTooLarge indicates that the header length exceeds MaxHeaderSize.
	ErrHeaderTooLarge = errors.New("header too large")
)

// Header is the header of an MDX or MDD container.
type Header struct {
	// Text is the decoded header text.
	Text string

	// Attributes are the attributes of the header element.
	Attributes header.Attributes

	// Checksum is the Adler-32 checksum of the raw header bytes.
	Checksum uint32

	// Size is the number of bytes occupied by the header, including the
	// length prefix and checksum. The key block section starts at this offset.
	Size int64
}

// ReadHeader reads and validates the container header at the start of r.
func ReadHeader(r io.Reader) (*Header, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("reading header length: %w", err)
	}
	size, err := beint.Uint32(prefix[:])
	if err != nil {
		return nil, fmt.Errorf("reading header length: %w", err)
	}
	if size > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, size)
	}

	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var sum [4]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return nil, fmt.Errorf("reading header checksum: %w", err)
	}
	checksum := binary.LittleEndian.Uint32(sum[:])
	if got := adler32.Checksum(raw); got != checksum {
		return nil, fmt.Errorf("%w: want %#08x, got %#08x", ErrChecksum, checksum, got)
	}

	text, err := header.DecodeText(raw)
	if err != nil {
		return nil, err
	}
	attrs, err := header.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	return &Header{
		Text:       text,
		Attributes: attrs,
		Checksum:   checksum,
		Size:       int64(len(prefix)) + int64(size) + int64(len(sum)),
	}, nil
}
