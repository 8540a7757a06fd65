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

// mdxutil inspects MDX and MDD dictionaries and exercises the decoding
// primitives of go-mdict from the command line.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	app := newMdxutilApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "%s: %v\n", app.Name, err)
		if errors.Is(err, ErrFlagParse) {
			os.Exit(ExitCodeFlagParseError)
		}
		os.Exit(ExitCodeUnknownError)
	}
}
