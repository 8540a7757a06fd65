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

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-mdict"
	"github.com/ianlewis/go-mdict/keyfold"
)

// errOpen indicates that one or more dictionaries could not be opened.
var errOpen = fmt.Errorf("%w: opening dictionaries", ErrMdxutil)

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "List dictionaries",
	ArgsUsage: "[DIR]...",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "data-dir",
			Usage:   "include dictionaries in `DIR`",
			Aliases: []string{"d"},
			Value:   cli.NewStringSlice(dictLocations()...),
		},
	},
	Action: func(c *cli.Context) error {
		dirs := c.StringSlice("data-dir")
		dirs = append(dirs, c.Args().Slice()...)

		dicts, errs := openAll(dirs)
		for _, err := range errs {
			fmt.Fprintln(c.App.ErrWriter, err)
		}

		tbl := table.New("Title", "Type", "Version", "Encoding", "Path").WithWriter(c.App.Writer)
		for _, d := range dicts {
			tbl.AddRow(
				d.settings.Title(),
				d.settings.Flavor(),
				d.settings.EngineVersion(),
				d.settings.EncodingName(),
				d.path,
			)
		}
		tbl.Print()

		if len(errs) > 0 {
			return fmt.Errorf("%w: %d failed", errOpen, len(errs))
		}
		return nil
	},
}

type dictFile struct {
	path     string
	header   *mdict.Header
	settings *mdict.Settings
}

// flavorOf returns the container flavor for path and whether path is a
// container at all.
func flavorOf(path string) (keyfold.Flavor, bool) {
	switch strings.ToLower(keyfold.Extension(path, "")) {
	case "mdx":
		return keyfold.Index, true
	case "mdd":
		return keyfold.Resource, true
	default:
		return keyfold.Index, false
	}
}

// openDict reads the header of the container at path.
func openDict(path string) (*dictFile, error) {
	flavor, ok := flavorOf(path)
	if !ok {
		return nil, fmt.Errorf("%q: not an .mdx or .mdd file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	h, err := mdict.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	s, err := mdict.NewSettings(h.Attributes, flavor)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	return &dictFile{
		path:     path,
		header:   h,
		settings: s,
	}, nil
}

// openAll opens all dictionaries under the given directories. Directories
// that do not exist are skipped.
func openAll(dirs []string) ([]*dictFile, []error) {
	var dicts []*dictFile
	var errs []error
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, info fs.DirEntry, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}
				errs = append(errs, err)
				return nil
			}
			if info.IsDir() {
				return nil
			}
			if _, ok := flavorOf(path); !ok {
				return nil
			}

			d, err := openDict(path)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, d)
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return dicts, errs
}
