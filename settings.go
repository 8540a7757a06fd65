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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/ianlewis/go-mdict/beint"
	"github.com/ianlewis/go-mdict/header"
	"github.com/ianlewis/go-mdict/keycmp"
	"github.com/ianlewis/go-mdict/keyfold"
)

// ErrInvalidHeader indicates that a header attribute has an invalid value.
var ErrInvalidHeader = errors.New("invalid header")

// Encryption is the set of encrypted sections declared by a header.
type Encryption int

const (
	// EncryptRecord indicates that record block information is encrypted with
	// a registration key.
	EncryptRecord Encryption = 1 << iota

	// EncryptKeyInfo indicates that key block information is encrypted with
	// blockcrypt.
	EncryptKeyInfo
)

// Settings are the per-file settings derived from a container header. They
// are immutable once created and safe for concurrent use.
type Settings struct {
	flavor keyfold.Flavor
	cmp    keycmp.Comparator

	engineVersion    float64
	numberWidth      beint.Width
	encrypted        Encryption
	keyCaseSensitive bool
	stripKey         bool
	encodingName     string
	encoding         encoding.Encoding
	title            string
	description      string
}

// NewSettings derives the settings for a container of flavor f from its
// header attributes.
func NewSettings(attrs header.Attributes, f keyfold.Flavor) (*Settings, error) {
	s := &Settings{
		flavor:           f,
		keyCaseSensitive: attrs.Bool("KeyCaseSensitive"),
		stripKey:         true,
		title:            attrs.Get("Title"),
		description:      attrs.Get("Description"),
	}

	var err error
	s.engineVersion, err = strconv.ParseFloat(attrs.Get("GeneratedByEngineVersion"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad GeneratedByEngineVersion: %w", ErrInvalidHeader, err)
	}
	s.numberWidth = beint.Width32
	if s.engineVersion >= 2.0 {
		s.numberWidth = beint.Width64
	}

	s.encrypted, err = parseEncrypted(attrs.Get("Encrypted"))
	if err != nil {
		return nil, err
	}

	if v, ok := attrs.Lookup("StripKey"); ok {
		s.stripKey = header.IsTruthy(v)
	}

	s.encodingName, s.encoding, err = parseEncoding(attrs.Get("Encoding"), f)
	if err != nil {
		return nil, err
	}

	s.cmp = keycmp.Select(f, s.keyCaseSensitive)

	return s, nil
}

func parseEncrypted(v string) (Encryption, error) {
	switch {
	case v == "" || strings.EqualFold(v, "no"):
		return 0, nil
	case strings.EqualFold(v, "yes"):
		return EncryptRecord, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad Encrypted: %q", ErrInvalidHeader, v)
	}
	return Encryption(n), nil
}

func parseEncoding(name string, f keyfold.Flavor) (string, encoding.Encoding, error) {
	// Resource keys are always UTF-16LE regardless of the header.
	if f == keyfold.Resource {
		return "UTF-16LE", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	}
	if name == "" {
		name = "UTF-8"
	}

	label := strings.ToLower(name)
	switch label {
	case "utf-16":
		label = "utf-16le"
	case "gbk", "gb2312":
		label = "gb18030"
	}
	e, err := htmlindex.Get(label)
	if err != nil {
		return "", nil, fmt.Errorf("%w: bad Encoding %q: %w", ErrInvalidHeader, name, err)
	}
	return name, e, nil
}

// Flavor returns the container flavor.
func (s *Settings) Flavor() keyfold.Flavor {
	return s.flavor
}

// EngineVersion returns the version of the engine that wrote the container.
func (s *Settings) EngineVersion() float64 {
	return s.engineVersion
}

// NumberWidth returns the width of offsets and sizes in the container.
func (s *Settings) NumberWidth() beint.Width {
	return s.numberWidth
}

// Encrypted returns the encrypted sections of the container.
func (s *Settings) Encrypted() Encryption {
	return s.encrypted
}

// KeyCaseSensitive reports whether keys are ordered case-sensitively.
func (s *Settings) KeyCaseSensitive() bool {
	return s.keyCaseSensitive
}

// StripKey reports whether keys are normalized before comparison.
func (s *Settings) StripKey() bool {
	return s.stripKey
}

// EncodingName returns the name of the key text encoding.
func (s *Settings) EncodingName() string {
	return s.encodingName
}

// Title returns the dictionary title.
func (s *Settings) Title() string {
	return s.title
}

// Description returns the dictionary description. It is often HTML.
func (s *Settings) Description() string {
	return s.description
}

// Comparator returns the key ordering of the container.
func (s *Settings) Comparator() keycmp.Comparator {
	return s.cmp
}

// Compare compares two normalized keys with the container's key ordering.
func (s *Settings) Compare(a, b string) (int, error) {
	//nolint:wrapcheck // comparator errors are returned as is.
	return s.cmp.Compare(a, b)
}

// NormalizeKey returns key as it is compared against the container's index.
func (s *Settings) NormalizeKey(key string) string {
	if !s.stripKey {
		return key
	}
	return keyfold.Strip(s.flavor, key)
}

// DecodeKey decodes a raw key from the container's text encoding. Trailing
// NUL terminators are removed.
func (s *Settings) DecodeKey(b []byte) (string, error) {
	k, err := s.encoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding key: %w", err)
	}
	return strings.TrimRight(string(k), "\x00"), nil
}
