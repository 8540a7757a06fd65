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

// Package keycmp implements the key orderings used by MDX and MDD key indexes.
//
// A container's key index is sorted with one of three orderings. The ordering
// is a property of the file, not of a lookup: choose it once with [Select]
// when the file is opened and use it for every comparison against that file.
// Binary search with a different ordering than the one used to build the
// index returns wrong results.
package keycmp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ianlewis/go-mdict/keyfold"
)

// ErrInvalidArgument indicates that a comparison operand was missing.
var ErrInvalidArgument = errors.New("invalid argument")

// Comparator is a three-way ordering over keys. Compare returns -1 if a sorts
// before b, 1 if a sorts after b and 0 if they are equal.
type Comparator interface {
	Compare(a, b string) (int, error)
}

// Select returns the Comparator used by containers of flavor f. MDD resource
// indexes are sorted by locale collation. MDX indexes are sorted ordinally
// when the header declares case-sensitive keys and case-insensitively
// otherwise.
func Select(f keyfold.Flavor, caseSensitive bool) Comparator {
	switch {
	case f == keyfold.Resource:
		return DefaultLocale
	case caseSensitive:
		return Ordinal{}
	default:
		return CaseFold{}
	}
}

// ByName returns the Comparator with the given name: "casefold", "ordinal" or
// "locale".
func ByName(name string) (Comparator, error) {
	switch strings.ToLower(name) {
	case "casefold":
		return CaseFold{}, nil
	case "ordinal":
		return Ordinal{}, nil
	case "locale":
		return DefaultLocale, nil
	default:
		return nil, fmt.Errorf("%w: unknown comparator %q", ErrInvalidArgument, name)
	}
}

// CaseFold orders keys rune by rune ignoring case. When one key is a
// case-insensitive prefix of the other the shorter key sorts first. Empty keys
// return [ErrInvalidArgument].
type CaseFold struct{}

// Compare implements [Comparator.Compare].
func (CaseFold) Compare(a, b string) (int, error) {
	if a == "" || b == "" {
		return 0, fmt.Errorf("%w: comparing %q with %q", ErrInvalidArgument, a, b)
	}

	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if (ra == utf8.RuneError && na == 1) || (rb == utf8.RuneError && nb == 1) {
			// Invalid UTF-8 is ordered by its bytes.
			if r := strings.Compare(a[:na], b[:nb]); r != 0 {
				return r, nil
			}
			a, b = a[na:], b[nb:]
			continue
		}
		a, b = a[na:], b[nb:]
		if ra == rb {
			continue
		}
		// NOTE: per-rune lowering rather than full case folding so that
		// each rune compares against exactly one rune.
		la, lb := unicode.ToLower(ra), unicode.ToLower(rb)
		if la != lb {
			return sign(int(la) - int(lb)), nil
		}
	}

	switch {
	case a == "" && b == "":
		return 0, nil
	case a == "":
		return -1, nil
	default:
		return 1, nil
	}
}

func (CaseFold) String() string {
	return "casefold"
}

// Ordinal orders keys by their bytes. Upper case ASCII letters sort before
// lower case letters.
type Ordinal struct{}

// Compare implements [Comparator.Compare]. It never returns an error.
func (Ordinal) Compare(a, b string) (int, error) {
	return strings.Compare(a, b), nil
}

func (Ordinal) String() string {
	return "ordinal"
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
