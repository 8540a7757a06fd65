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

// Package keyfold normalizes dictionary keys before they are compared.
//
// Keys in MDX containers are compared after removing punctuation and
// whitespace. MDD containers hold resource paths; their keys are stripped the
// same way except that the file extension, starting at the final period, is
// kept as-is.
package keyfold

import (
	"strings"
)

// Flavor selects the normalization rules for a container type.
type Flavor int

const (
	// Index is the flavor used by MDX keyword indexes.
	Index Flavor = iota

	// Resource is the flavor used by MDD resource indexes.
	Resource
)

func (f Flavor) String() string {
	switch f {
	case Index:
		return "mdx"
	case Resource:
		return "mdd"
	default:
		return "unknown"
	}
}

// stripped reports whether b is removed from keys. All stripped characters
// are ASCII so keys can be filtered byte by byte without decoding UTF-8.
func stripped(b byte) bool {
	switch b {
	case '(', ')', ',', '.', ' ', '\'', '/', '\\', '@', '_', '-':
		return true
	default:
		return false
	}
}

// Strip removes punctuation and whitespace from key according to flavor f.
func Strip(f Flavor, key string) string {
	var suffix string
	if f == Resource {
		if i := strings.LastIndexByte(key, '.'); i >= 0 {
			key, suffix = key[:i], key[i:]
		}
	}

	var b strings.Builder
	b.Grow(len(key) + len(suffix))
	for i := 0; i < len(key); i++ {
		if !stripped(key[i]) {
			b.WriteByte(key[i])
		}
	}
	b.WriteString(suffix)
	return b.String()
}

// Extension returns the text after the final period in name. It returns def
// if name has no extension.
func Extension(name, def string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return def
	}
	return name[i+1:]
}
