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

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-mdict/beint"
	"github.com/ianlewis/go-mdict/blockcrypt"
	"github.com/ianlewis/go-mdict/distance"
	"github.com/ianlewis/go-mdict/keycmp"
	"github.com/ianlewis/go-mdict/keyfold"
)

// decodeHex decodes a hex string, ignoring spaces.
func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: bad hex: %w", ErrFlagParse, err)
	}
	return b, nil
}

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "Decode a big-endian integer",
	ArgsUsage: "HEX",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "width",
			Usage:   "integer width in bits: 8, 16, 32 or 64",
			Aliases: []string{"w"},
			Value:   32,
		},
	},
	Action: func(c *cli.Context) error {
		if err := argsError(c, 1); err != nil {
			return err
		}
		b, err := decodeHex(c.Args().First())
		if err != nil {
			return err
		}

		v, err := beint.Decode(beint.Width(c.Int("width")), b)
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		fmt.Fprintln(c.App.Writer, v)
		return nil
	},
}

var decryptCommand = &cli.Command{
	Name:      "decrypt",
	Usage:     "Decrypt an encrypted block",
	ArgsUsage: "HEX",
	Action: func(c *cli.Context) error {
		if err := argsError(c, 1); err != nil {
			return err
		}
		b, err := decodeHex(c.Args().First())
		if err != nil {
			return err
		}

		out, err := blockcrypt.DecryptBlock(b)
		if err != nil {
			return fmt.Errorf("decrypting: %w", err)
		}
		fmt.Fprintln(c.App.Writer, hex.EncodeToString(out))
		return nil
	},
}

var normalizeCommand = &cli.Command{
	Name:      "normalize",
	Usage:     "Normalize a key for lookup",
	ArgsUsage: "KEY",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "resource",
			Usage:   "normalize a resource (.mdd) key",
			Aliases: []string{"r"},
		},
	},
	Action: func(c *cli.Context) error {
		if err := argsError(c, 1); err != nil {
			return err
		}
		f := keyfold.Index
		if c.Bool("resource") {
			f = keyfold.Resource
		}
		fmt.Fprintln(c.App.Writer, keyfold.Strip(f, c.Args().First()))
		return nil
	},
}

var compareCommand = &cli.Command{
	Name:      "compare",
	Usage:     "Compare two keys",
	ArgsUsage: "A B",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "key order: casefold, ordinal or locale",
			Aliases: []string{"m"},
			Value:   "casefold",
		},
	},
	Action: func(c *cli.Context) error {
		if err := argsError(c, 2); err != nil {
			return err
		}
		cmp, err := keycmp.ByName(c.String("mode"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		}

		r, err := cmp.Compare(c.Args().Get(0), c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("comparing: %w", err)
		}
		fmt.Fprintln(c.App.Writer, r)
		return nil
	},
}

var distanceCommand = &cli.Command{
	Name:      "distance",
	Usage:     "Print the edit distance between two keys",
	ArgsUsage: "A B",
	Action: func(c *cli.Context) error {
		if err := argsError(c, 2); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, distance.Levenshtein(c.Args().Get(0), c.Args().Get(1)))
		return nil
	},
}
