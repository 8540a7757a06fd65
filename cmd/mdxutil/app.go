// Copyright 2025 Ian Lewis
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
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrMdxutil is a parent error for all command errors.
var ErrMdxutil = errors.New("mdxutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrMdxutil)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// argsError returns a flag parsing error if the command did not receive
// exactly n arguments.
func argsError(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%w: %s: expected %d arguments, got %d", ErrFlagParse, c.Command.Name, n, c.NArg())
	}
	return nil
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

Licensed under the Apache License, Version 2.0.
http://www.apache.org/licenses/LICENSE-2.0
`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, ", "))
	if err != nil {
		return fmt.Errorf("printing version: %w", err)
	}
	return nil
}

func newMdxutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Inspect MDX and MDD dictionaries.",
		Description: strings.Join([]string{
			"MDict utility written in Go.",
			"http://github.com/ianlewis/go-mdict",
		}, "\n"),
		Flags: []cli.Flag{
			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			infoCommand,
			decodeCommand,
			decryptCommand,
			normalizeCommand,
			compareCommand,
			distanceCommand,
		},
		ErrWriter: os.Stderr,
	}
}
