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

package keyfold

import (
	"bytes"

	"golang.org/x/text/transform"
)

// Stripper is a [transform.Transformer] that performs the same normalization
// as Strip. It can be chained with other transformers, e.g. case folding.
type Stripper struct {
	flavor Flavor

	// inSuffix is true after the final period of a resource key was emitted.
	inSuffix bool
}

// NewStripper returns a new Stripper for flavor f.
func NewStripper(f Flavor) *Stripper {
	return &Stripper{flavor: f}
}

// Transform implements [transform.Transformer.Transform].
func (s *Stripper) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c := src[nSrc]
		if !s.inSuffix {
			switch {
			case c == '.' && s.flavor == Resource:
				if bytes.IndexByte(src[nSrc+1:], '.') >= 0 {
					nSrc++
					continue
				}
				if !atEOF {
					// A later period may still arrive.
					return nDst, nSrc, transform.ErrShortSrc
				}
				s.inSuffix = true
			case stripped(c):
				nSrc++
				continue
			}
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (s *Stripper) Reset() {
	s.inSuffix = false
}
