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
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-mdict/internal/index"
	"github.com/ianlewis/go-mdict/keyfold"
)

// Keyword is a key block entry.
type Keyword struct {
	// Key is the decoded keyword or resource path.
	Key string

	// RecordOffset is the offset of the keyword's record in the decompressed
	// record data.
	RecordOffset uint64
}

// String returns the keyword's key.
func (k *Keyword) String() string {
	return k.Key
}

// KeyIndex is an in-memory keyword index ordered the way the container orders
// its keys. Callers that walk key blocks collect the keywords and build a
// KeyIndex to look keys up.
type KeyIndex struct {
	index *index.Index[*Keyword]
}

// NewKeyIndex returns a new KeyIndex for the keywords using the container
// settings s.
func NewKeyIndex(s *Settings, keywords []*Keyword) (*KeyIndex, error) {
	folder := func() transform.Transformer {
		return transform.Nop
	}
	if s.StripKey() {
		folder = func() transform.Transformer {
			return keyfold.NewStripper(s.Flavor())
		}
	}

	idx, err := index.New(keywords, &index.Options{
		Comparator: s.Comparator(),
		Folder:     folder,
	})
	if err != nil {
		return nil, err
	}
	return &KeyIndex{index: idx}, nil
}

// Len returns the number of keywords in the index.
func (k *KeyIndex) Len() int {
	return k.index.Len()
}

// Search returns the keywords that match query.
func (k *KeyIndex) Search(query string) ([]*Keyword, error) {
	//nolint:wrapcheck // index errors are already wrapped.
	return k.index.Search(query)
}

// Suggest returns up to n keywords closest to query, closest first. It is
// used when Search finds nothing.
func (k *KeyIndex) Suggest(query string, n int) ([]*Keyword, error) {
	//nolint:wrapcheck // index errors are already wrapped.
	return k.index.Suggest(query, n)
}
