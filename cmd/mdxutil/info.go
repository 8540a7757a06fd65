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
	"fmt"
	"maps"
	"slices"

	"github.com/k3a/html2text"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Show dictionary header information",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "attributes",
			Usage:   "print all header attributes",
			Aliases: []string{"a"},
		},
	},
	Action: func(c *cli.Context) error {
		if err := argsError(c, 1); err != nil {
			return err
		}

		d, err := openDict(c.Args().First())
		if err != nil {
			return err
		}
		s := d.settings

		w := c.App.Writer
		fmt.Fprintf(w, "Title:          %s\n", s.Title())
		fmt.Fprintf(w, "Type:           %s\n", s.Flavor())
		fmt.Fprintf(w, "Engine Version: %v\n", s.EngineVersion())
		fmt.Fprintf(w, "Number Width:   %v\n", s.NumberWidth())
		fmt.Fprintf(w, "Encoding:       %s\n", s.EncodingName())
		fmt.Fprintf(w, "Encrypted:      %d\n", s.Encrypted())
		fmt.Fprintf(w, "Case Sensitive: %v\n", s.KeyCaseSensitive())
		fmt.Fprintf(w, "Strip Key:      %v\n", s.StripKey())
		fmt.Fprintf(w, "Key Order:      %v\n", s.Comparator())
		fmt.Fprintf(w, "Key Offset:     %d\n", d.header.Size)
		if desc := s.Description(); desc != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, html2text.HTML2Text(desc))
		}

		if c.Bool("attributes") {
			fmt.Fprintln(w)
			tbl := table.New("Attribute", "Value").WithWriter(w)
			attrs := d.header.Attributes
			for _, name := range slices.Sorted(maps.Keys(attrs)) {
				tbl.AddRow(name, attrs[name])
			}
			tbl.Print()
		}

		return nil
	},
}
