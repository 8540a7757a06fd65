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
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-mdict/beint"
	"github.com/ianlewis/go-mdict/internal/testutil"
)

const testHeaderText = `<Dictionary GeneratedByEngineVersion="2.0" Encrypted="0" ` +
	`Encoding="UTF-8" KeyCaseSensitive="No" Title="Test Dictionary" ` +
	`Description="&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;"/>`

// runApp runs the app with args. Commands are package variables that cli
// mutates while running so these tests do not run in parallel.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := newMdxutilApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(append([]string{"mdxutil"}, args...))
	return out.String(), err
}

func TestApp_tools(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "distance",
			args:     []string{"distance", "kitten", "sitting"},
			expected: "3\n",
		},
		{
			name:     "distance empty",
			args:     []string{"distance", "", "sitting"},
			expected: "9999\n",
		},
		{
			name:     "normalize",
			args:     []string{"normalize", "A (b).mdx-like_key"},
			expected: "Abmdxlikekey\n",
		},
		{
			name:     "normalize resource",
			args:     []string{"normalize", "--resource", "a.b.c.ext"},
			expected: "abc.ext\n",
		},
		{
			name:     "compare casefold",
			args:     []string{"compare", "Hello", "hello"},
			expected: "0\n",
		},
		{
			name:     "compare ordinal",
			args:     []string{"compare", "--mode", "ordinal", "Hello", "hello"},
			expected: "-1\n",
		},
		{
			name:     "decode",
			args:     []string{"decode", "00000100"},
			expected: "256\n",
		},
		{
			name:     "decode 64",
			args:     []string{"decode", "--width", "64", "00 00 00 01 00 00 00 02"},
			expected: "4294967298\n",
		},
		{
			name:     "decrypt",
			args:     []string{"decrypt", "0200000012345678150b15d3ba79c4aaeea33274a8d92a5c"},
			expected: "0200000012345678" + "68656c6c6f2c206d64696374212121" + "21\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := runApp(t, test.args...)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if want := test.expected; want != got {
				t.Fatalf("Run: want: %q, got: %q", want, got)
			}
		})
	}
}

func TestApp_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{
			name: "decode overflow",
			args: []string{"decode", "--width", "64", "0020000000000000"},
			err:  beint.ErrOverflow,
		},
		{
			name: "bad hex",
			args: []string{"decode", "zz"},
			err:  ErrFlagParse,
		},
		{
			name: "wrong arguments",
			args: []string{"distance", "a"},
			err:  ErrFlagParse,
		},
		{
			name: "bad mode",
			args: []string{"compare", "--mode", "random", "a", "b"},
			err:  ErrFlagParse,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runApp(t, test.args...)
			if !errors.Is(err, test.err) {
				t.Fatalf("Run: want: %v, got: %v", test.err, err)
			}
		})
	}
}

func TestApp_info(t *testing.T) {
	path := testutil.MakeTempContainer(t, ".mdx", testutil.MakeHeader(t, testHeaderText, nil))

	got, err := runApp(t, "info", "--attributes", path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, want := range []string{
		"Title:          Test Dictionary",
		"Number Width:   64-bit",
		"Key Order:      casefold",
		"Hello world",
		"GeneratedByEngineVersion",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("info output missing %q:\n%s", want, got)
		}
	}
}

func TestApp_list(t *testing.T) {
	mdx := testutil.MakeTempContainer(t, ".mdx", testutil.MakeHeader(t, testHeaderText, nil))
	dir := filepath.Dir(mdx)

	got, err := runApp(t, "list", "--data-dir", dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(got, "Test Dictionary") || !strings.Contains(got, mdx) {
		t.Fatalf("list output missing dictionary:\n%s", got)
	}
}

func TestApp_listError(t *testing.T) {
	bad := testutil.MakeTempContainer(t, ".mdd", testutil.MakeHeader(t, testHeaderText, &testutil.MakeHeaderOptions{
		BadChecksum: true,
	}))

	_, err := runApp(t, "list", "--data-dir", filepath.Dir(bad))
	if !errors.Is(err, errOpen) {
		t.Fatalf("Run: want: %v, got: %v", errOpen, err)
	}
}
