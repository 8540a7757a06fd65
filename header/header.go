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

// Package header extracts the attributes of an MDX or MDD container header.
//
// The header is a single XML element, usually stored as UTF-16LE text, e.g.
//
//	<Dictionary GeneratedByEngineVersion="2.0" Encoding="UTF-8"
//	    KeyCaseSensitive="No" StripKey="Yes" Title="..." />
//
// Older containers name the element Library_Data instead of Dictionary.
package header

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	dictionaryElement  = "Dictionary"
	libraryDataElement = "Library_Data"
)

// ErrHeaderMissing indicates that the header has no recognized element or
// could not be parsed.
var ErrHeaderMissing = errors.New("header missing")

// Attributes maps header attribute names to their values.
type Attributes map[string]string

// Get returns the value of the named attribute or the empty string.
func (a Attributes) Get(name string) string {
	return a[name]
}

// Lookup returns the value of the named attribute and whether it is present.
func (a Attributes) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Bool reports whether the named attribute holds a true value. See IsTruthy.
func (a Attributes) Bool(name string) bool {
	return IsTruthy(a[name])
}

// IsTruthy reports whether v is "yes" or "true", ignoring case. All other
// values, including the empty string, are false.
func IsTruthy(v string) bool {
	return strings.EqualFold(v, "yes") || strings.EqualFold(v, "true")
}

// Parse returns the attributes of the first Dictionary element in text. If
// there is none, the first Library_Data element is used.
func Parse(text string) (Attributes, error) {
	d := xml.NewDecoder(strings.NewReader(text))
	// Headers written by common tools contain bare '&' and HTML entities in
	// attribute values.
	d.Strict = false
	d.Entity = xml.HTMLEntity

	var fallback *xml.StartElement
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHeaderMissing, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case dictionaryElement:
			return attributes(se), nil
		case libraryDataElement:
			if fallback == nil {
				fallback = &se
			}
		}
	}

	if fallback == nil {
		return nil, fmt.Errorf("%w: no %s or %s element", ErrHeaderMissing, dictionaryElement, libraryDataElement)
	}
	return attributes(*fallback), nil
}

func attributes(se xml.StartElement) Attributes {
	attrs := make(Attributes, len(se.Attr))
	for _, a := range se.Attr {
		if _, ok := attrs[a.Name.Local]; ok {
			continue
		}
		attrs[a.Name.Local] = a.Value
	}
	return attrs
}

// DecodeText decodes raw header bytes into a string. Headers are UTF-16LE,
// with or without a byte order mark. UTF-8 text is detected by the absence
// of a zero second byte. Trailing NUL characters and whitespace are removed.
func DecodeText(b []byte) (string, error) {
	dec := unicode.UTF8BOM.NewDecoder()
	if isUTF16(b) {
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}

	text, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", fmt.Errorf("decoding header text: %w", err)
	}
	return strings.TrimRight(string(text), "\x00\r\n\t "), nil
}

func isUTF16(b []byte) bool {
	if bytes.HasPrefix(b, []byte{0xff, 0xfe}) || bytes.HasPrefix(b, []byte{0xfe, 0xff}) {
		return true
	}
	return len(b) >= 2 && b[0] != 0 && b[1] == 0
}
