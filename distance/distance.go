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

// Package distance implements the edit distance used to rank "did you mean"
// suggestions when a key lookup fails.
package distance

import (
	"slices"
)

// NoMatch is the distance reported when either string is empty.
const NoMatch = 9999

// Levenshtein returns the number of single-rune insertions, deletions and
// substitutions needed to turn a into b. Adjacent transpositions are not
// treated specially. If either string is empty it returns NoMatch.
func Levenshtein(a, b string) int {
	if a == "" || b == "" {
		return NoMatch
	}

	s, t := []rune(a), []rune(b)
	m, n := len(s), len(t)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if s[i-1] == t[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = 1 + min(
				d[i-1][j],   // deletion
				d[i][j-1],   // insertion
				d[i-1][j-1], // substitution
			)
		}
	}

	return d[m][n]
}

// Match is a ranked candidate.
type Match struct {
	// Index is the position of Key in the candidates passed to Rank.
	Index int

	Key      string
	Distance int
}

// Rank orders candidates by their distance from query, closest first.
// Candidates with equal distance keep their original order. Candidates at
// NoMatch are dropped. If n > 0 at most n matches are returned.
func Rank(query string, candidates []string, n int) []Match {
	var matches []Match
	for i, c := range candidates {
		d := Levenshtein(query, c)
		if d == NoMatch {
			continue
		}
		matches = append(matches, Match{Index: i, Key: c, Distance: d})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return a.Distance - b.Distance
	})

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches
}
