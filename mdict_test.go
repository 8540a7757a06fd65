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

package mdict_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-mdict"
	"github.com/ianlewis/go-mdict/beint"
	"github.com/ianlewis/go-mdict/blockcrypt"
	"github.com/ianlewis/go-mdict/header"
	"github.com/ianlewis/go-mdict/internal/testutil"
	"github.com/ianlewis/go-mdict/keycmp"
	"github.com/ianlewis/go-mdict/keyfold"
)

const testHeaderText = `<Dictionary GeneratedByEngineVersion="2.0" RequiredEngineVersion="2.0" ` +
	`Encrypted="2" Encoding="UTF-8" Format="Html" KeyCaseSensitive="No" StripKey="Yes" ` +
	`Title="Test Dictionary" Description="&lt;b&gt;A test&lt;/b&gt;"/>`

func TestReadHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *testutil.MakeHeaderOptions
		err  error
	}{
		{
			name: "utf-16le",
		},
		{
			name: "utf-8",
			opts: &testutil.MakeHeaderOptions{UTF8: true},
		},
		{
			name: "bad checksum",
			opts: &testutil.MakeHeaderOptions{BadChecksum: true},
			err:  mdict.ErrChecksum,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := testutil.MakeHeader(t, testHeaderText, test.opts)
			// Trailing data belongs to the key block section.
			r := bytes.NewReader(append(b, 0xde, 0xad))

			h, err := mdict.ReadHeader(r)
			if !errors.Is(err, test.err) {
				t.Fatalf("ReadHeader: unexpected error, want: %v, got: %v", test.err, err)
			}
			if err != nil {
				return
			}

			if want, got := testHeaderText, h.Text; want != got {
				t.Errorf("Text: want: %q, got: %q", want, got)
			}
			if want, got := int64(len(b)), h.Size; want != got {
				t.Errorf("Size: want: %d, got: %d", want, got)
			}
			if want, got := "Test Dictionary", h.Attributes.Get("Title"); want != got {
				t.Errorf("Title: want: %q, got: %q", want, got)
			}
			if want, got := 2, r.Len(); want != got {
				t.Errorf("unread bytes: want: %d, got: %d", want, got)
			}
		})
	}
}

func TestReadHeader_truncated(t *testing.T) {
	t.Parallel()

	b := testutil.MakeHeader(t, testHeaderText, nil)
	for _, n := range []int{0, 3, 10, len(b) - 1} {
		_, err := mdict.ReadHeader(bytes.NewReader(b[:n]))
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("ReadHeader(%d bytes): want EOF error, got: %v", n, err)
		}
	}
}

func TestReadHeader_tooLarge(t *testing.T) {
	t.Parallel()

	b := []byte{0xff, 0xff, 0xff, 0xff}
	if _, err := mdict.ReadHeader(bytes.NewReader(b)); !errors.Is(err, mdict.ErrHeaderTooLarge) {
		t.Fatalf("ReadHeader: want: %v, got: %v", mdict.ErrHeaderTooLarge, err)
	}
}

func TestReadHeader_missingElement(t *testing.T) {
	t.Parallel()

	b := testutil.MakeHeader(t, `<Other/>`, nil)
	if _, err := mdict.ReadHeader(bytes.NewReader(b)); !errors.Is(err, header.ErrHeaderMissing) {
		t.Fatalf("ReadHeader: want: %v, got: %v", header.ErrHeaderMissing, err)
	}
}

type settingsResult struct {
	NumberWidth      beint.Width
	Encrypted        mdict.Encryption
	KeyCaseSensitive bool
	StripKey         bool
	EncodingName     string
	Comparator       string
}

func settingsOf(s *mdict.Settings) settingsResult {
	name := ""
	if str, ok := s.Comparator().(interface{ String() string }); ok {
		name = str.String()
	}
	return settingsResult{
		NumberWidth:      s.NumberWidth(),
		Encrypted:        s.Encrypted(),
		KeyCaseSensitive: s.KeyCaseSensitive(),
		StripKey:         s.StripKey(),
		EncodingName:     s.EncodingName(),
		Comparator:       name,
	}
}

func TestNewSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attrs    header.Attributes
		flavor   keyfold.Flavor
		expected settingsResult
		err      error
	}{
		{
			name: "version 2 mdx",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "2.0",
				"Encrypted":                "2",
				"Encoding":                 "UTF-8",
				"KeyCaseSensitive":         "No",
			},
			flavor: keyfold.Index,
			expected: settingsResult{
				NumberWidth:  beint.Width64,
				Encrypted:    mdict.EncryptKeyInfo,
				StripKey:     true,
				EncodingName: "UTF-8",
				Comparator:   "casefold",
			},
		},
		{
			name: "version 1 mdx case sensitive",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "1.2",
				"Encrypted":                "No",
				"Encoding":                 "GBK",
				"KeyCaseSensitive":         "Yes",
				"StripKey":                 "No",
			},
			flavor: keyfold.Index,
			expected: settingsResult{
				NumberWidth:      beint.Width32,
				KeyCaseSensitive: true,
				EncodingName:     "GBK",
				Comparator:       "ordinal",
			},
		},
		{
			name: "encrypted yes",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "2.0",
				"Encrypted":                "Yes",
			},
			flavor: keyfold.Index,
			expected: settingsResult{
				NumberWidth:  beint.Width64,
				Encrypted:    mdict.EncryptRecord,
				StripKey:     true,
				EncodingName: "UTF-8",
				Comparator:   "casefold",
			},
		},
		{
			name: "mdd",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "2.0",
				"Encoding":                 "",
				"KeyCaseSensitive":         "Yes",
			},
			flavor: keyfold.Resource,
			expected: settingsResult{
				NumberWidth:      beint.Width64,
				KeyCaseSensitive: true,
				StripKey:         true,
				EncodingName:     "UTF-16LE",
				Comparator:       "locale(und)",
			},
		},
		{
			name: "bad version",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "two",
			},
			err: mdict.ErrInvalidHeader,
		},
		{
			name: "bad encrypted",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "2.0",
				"Encrypted":                "maybe",
			},
			err: mdict.ErrInvalidHeader,
		},
		{
			name: "bad encoding",
			attrs: header.Attributes{
				"GeneratedByEngineVersion": "2.0",
				"Encoding":                 "EBCDIC-42",
			},
			err: mdict.ErrInvalidHeader,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s, err := mdict.NewSettings(test.attrs, test.flavor)
			if !errors.Is(err, test.err) {
				t.Fatalf("NewSettings: unexpected error, want: %v, got: %v", test.err, err)
			}
			if err != nil {
				return
			}

			if diff := cmp.Diff(test.expected, settingsOf(s)); diff != "" {
				t.Fatalf("NewSettings (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSettings_keys(t *testing.T) {
	t.Parallel()

	h, err := mdict.ReadHeader(bytes.NewReader(testutil.MakeHeader(t, testHeaderText, nil)))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	s, err := mdict.NewSettings(h.Attributes, keyfold.Index)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	if want, got := "Test Dictionary", s.Title(); want != got {
		t.Errorf("Title: want: %q, got: %q", want, got)
	}
	if want, got := "<b>A test</b>", s.Description(); want != got {
		t.Errorf("Description: want: %q, got: %q", want, got)
	}
	if want, got := 2.0, s.EngineVersion(); want != got {
		t.Errorf("EngineVersion: want: %v, got: %v", want, got)
	}

	if want, got := "HelloWorld", s.NormalizeKey("Hello, World"); want != got {
		t.Errorf("NormalizeKey: want: %q, got: %q", want, got)
	}

	r, err := s.Compare("hello", "HELLO")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if r != 0 {
		t.Errorf("Compare: want: 0, got: %d", r)
	}
	if _, err := s.Compare("", "a"); !errors.Is(err, keycmp.ErrInvalidArgument) {
		t.Errorf("Compare: want: %v, got: %v", keycmp.ErrInvalidArgument, err)
	}

	key, err := s.DecodeKey([]byte("caf\xc3\xa9\x00"))
	if err != nil {
		t.Fatalf("DecodeKey: %v", err)
	}
	if want := "café"; want != key {
		t.Errorf("DecodeKey: want: %q, got: %q", want, key)
	}
}

func TestSettings_decodeKeyGB18030(t *testing.T) {
	t.Parallel()

	s, err := mdict.NewSettings(header.Attributes{
		"GeneratedByEngineVersion": "2.0",
		"Encoding":                 "GB2312",
	}, keyfold.Index)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	// "中文" in GB18030.
	key, err := s.DecodeKey([]byte{0xd6, 0xd0, 0xce, 0xc4})
	if err != nil {
		t.Fatalf("DecodeKey: %v", err)
	}
	if want := "中文"; want != key {
		t.Errorf("DecodeKey: want: %q, got: %q", want, key)
	}
}

func TestSettings_resourceKeys(t *testing.T) {
	t.Parallel()

	s, err := mdict.NewSettings(header.Attributes{
		"GeneratedByEngineVersion": "2.0",
	}, keyfold.Resource)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	if want, got := `Imagesab.png`, s.NormalizeKey(`\Images\a_b.png`); want != got {
		t.Errorf("NormalizeKey: want: %q, got: %q", want, got)
	}

	// `\a.png` in UTF-16LE.
	key, err := s.DecodeKey([]byte{'\\', 0, 'a', 0, '.', 0, 'p', 0, 'n', 0, 'g', 0, 0, 0})
	if err != nil {
		t.Fatalf("DecodeKey: %v", err)
	}
	if want := `\a.png`; want != key {
		t.Errorf("DecodeKey: want: %q, got: %q", want, key)
	}
}

func TestKeyIndex(t *testing.T) {
	t.Parallel()

	s, err := mdict.NewSettings(header.Attributes{
		"GeneratedByEngineVersion": "2.0",
		"KeyCaseSensitive":         "No",
	}, keyfold.Index)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	keywords := []*mdict.Keyword{
		{Key: "apple", RecordOffset: 0},
		{Key: "Apple Pie", RecordOffset: 10},
		{Key: "banana", RecordOffset: 20},
		{Key: "bandana", RecordOffset: 30},
		{Key: "cherry", RecordOffset: 40},
		{Key: "-", RecordOffset: 50},
	}

	k, err := mdict.NewKeyIndex(s, keywords)
	if err != nil {
		t.Fatalf("NewKeyIndex: %v", err)
	}
	if want, got := len(keywords), k.Len(); want != got {
		t.Fatalf("Len: want: %d, got: %d", want, got)
	}

	got, err := k.Search("apple-pie")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if diff := cmp.Diff([]*mdict.Keyword{keywords[1]}, got); diff != "" {
		t.Fatalf("Search (-want, +got):\n%s", diff)
	}

	got, err = k.Search("banan")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Search: want no results, got: %v", got)
	}

	got, err = k.Suggest("banan", 2)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if diff := cmp.Diff([]*mdict.Keyword{keywords[2], keywords[3]}, got); diff != "" {
		t.Fatalf("Suggest (-want, +got):\n%s", diff)
	}

	// Punctuation-only keys strip to nothing and match no query.
	got, err = k.Search("--")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Search: want no results, got: %v", got)
	}
}

func TestDecryptKeyBlock(t *testing.T) {
	t.Parallel()

	payload := []byte("key block info payload")
	block := testutil.MakeBlock(t, 0x02, payload)
	if bytes.Equal(block[blockcrypt.HeaderSize:], payload) {
		t.Fatalf("MakeBlock: payload not encrypted")
	}

	got, err := blockcrypt.DecryptBlock(block)
	if err != nil {
		t.Fatalf("DecryptBlock: %v", err)
	}
	if diff := cmp.Diff(payload, got[blockcrypt.HeaderSize:]); diff != "" {
		t.Fatalf("DecryptBlock (-want, +got):\n%s", diff)
	}
}
