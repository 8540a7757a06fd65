// Copyright 2025 Ian Lewis
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

package index

import (
	"fmt"
	"slices"
	"sort"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-mdict/distance"
	"github.com/ianlewis/go-mdict/keycmp"
)

// Options are options for an Index.
type Options struct {
	// Comparator orders the folded keys.
	Comparator keycmp.Comparator

	// Folder returns a [transform.Transformer] that is applied to keys and
	// queries before they are compared.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{
	Comparator: keycmp.Ordinal{},
	Folder: func() transform.Transformer {
		return transform.Nop
	},
}

type entry[V fmt.Stringer] struct {
	folded string
	value  V
}

// Index is a generic sorted array index.
type Index[V fmt.Stringer] struct {
	// index is sorted by the folded key.
	index []entry[V]

	cmp  keycmp.Comparator
	fold func() transform.Transformer
}

// New creates an index from the given values. Values are keyed by their
// String method after folding.
func New[V fmt.Stringer](values []V, options *Options) (*Index[V], error) {
	if options == nil {
		options = DefaultOptions
	}
	idx := &Index[V]{
		cmp:  DefaultOptions.Comparator,
		fold: DefaultOptions.Folder,
	}
	if options.Comparator != nil {
		idx.cmp = options.Comparator
	}
	if options.Folder != nil {
		idx.fold = options.Folder
	}

	idx.index = make([]entry[V], 0, len(values))
	for _, v := range values {
		folded, err := idx.foldKey(v.String())
		if err != nil {
			return nil, err
		}
		idx.index = append(idx.index, entry[V]{folded: folded, value: v})
	}

	var sortErr error
	slices.SortStableFunc(idx.index, func(a, b entry[V]) int {
		r, err := idx.compare(a.folded, b.folded)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return r
	})
	if sortErr != nil {
		return nil, fmt.Errorf("sorting index: %w", sortErr)
	}

	return idx, nil
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// Search performs a binary search over the index and returns matching values.
// A query that folds to the empty string matches nothing.
func (idx *Index[V]) Search(query string) ([]V, error) {
	folded, err := idx.foldKey(query)
	if err != nil {
		return nil, err
	}
	if folded == "" {
		return nil, nil
	}

	var cmpErr error
	compare := func(i int) int {
		r, err := idx.compare(folded, idx.index[i].folded)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return r
	}

	i, found := sort.Find(len(idx.index), compare)
	if cmpErr != nil {
		return nil, fmt.Errorf("searching index: %w", cmpErr)
	}
	if !found {
		return nil, nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && compare(j) == 0; j++ {
	}

	var result []V
	for _, e := range idx.index[i:j] {
		result = append(result, e.value)
	}
	return result, nil
}

// Suggest returns up to n values whose folded keys are closest to the folded
// query by edit distance, closest first.
func (idx *Index[V]) Suggest(query string, n int) ([]V, error) {
	folded, err := idx.foldKey(query)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(idx.index))
	for i, e := range idx.index {
		keys[i] = e.folded
	}

	var result []V
	for _, m := range distance.Rank(folded, keys, n) {
		result = append(result, idx.index[m.Index].value)
	}
	return result, nil
}

// compare orders folded keys. Keys that fold to nothing, e.g. headwords made
// only of punctuation, sort first and are never passed to the comparator.
func (idx *Index[V]) compare(a, b string) (int, error) {
	switch {
	case a == "" && b == "":
		return 0, nil
	case a == "":
		return -1, nil
	case b == "":
		return 1, nil
	}
	//nolint:wrapcheck // errors are wrapped by the caller.
	return idx.cmp.Compare(a, b)
}

func (idx *Index[V]) foldKey(key string) (string, error) {
	folded, _, err := transform.String(idx.fold(), key)
	if err != nil {
		return "", fmt.Errorf("folding key %q: %w", key, err)
	}
	return folded, nil
}
