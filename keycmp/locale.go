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

package keycmp

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale compares keys with the root collation order.
var DefaultLocale = NewLocale(language.Und)

// Locale orders keys by locale-aware collation. Keys that collate equally are
// ordered by their bytes. A Locale is safe for concurrent use.
type Locale struct {
	tag  language.Tag
	pool sync.Pool
}

// NewLocale returns a Locale that collates keys for the language tag.
func NewLocale(tag language.Tag, opts ...collate.Option) *Locale {
	l := &Locale{tag: tag}
	l.pool.New = func() any {
		// Collators keep internal buffers and cannot be shared.
		return collate.New(tag, opts...)
	}
	return l
}

// Compare implements [Comparator.Compare]. It never returns an error.
func (l *Locale) Compare(a, b string) (int, error) {
	c, _ := l.pool.Get().(*collate.Collator)
	r := c.CompareString(a, b)
	l.pool.Put(c)

	if r != 0 {
		return sign(r), nil
	}
	return strings.Compare(a, b), nil
}

func (l *Locale) String() string {
	return "locale(" + l.tag.String() + ")"
}
