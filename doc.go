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

// Package mdict implements the building blocks for reading MDX and MDD
// dictionaries in pure Go.
//
// An MDict dictionary is made up of two sibling containers:
//  1. An .mdx file that holds the dictionary keywords and their articles.
//  2. An optional .mdd file that holds resources (images, sounds, style
//     sheets) keyed by their path.
//
// Both containers start with the same header: a 4-byte big-endian length, an
// XML header element (usually UTF-16LE) and a 4-byte little-endian Adler-32
// checksum. The header decides how the rest of the file is read: the width of
// offsets, whether blocks are encrypted, the text encoding of keys and how
// keys are normalized and ordered. [ReadHeader] reads it and [NewSettings]
// turns its attributes into per-file settings.
//
// The lower level primitives live in sub-packages:
//   - beint decodes big-endian offsets and sizes.
//   - blockcrypt decrypts encrypted key and record blocks.
//   - keyfold normalizes keys.
//   - keycmp orders keys.
//   - distance ranks near-miss keys.
//   - header parses header attributes.
package mdict
