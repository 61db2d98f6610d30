/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package test holds shared test helpers.
package test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

var update = flag.Bool("update", false, "update golden files with the current output")

// AssertGoldenString compares actual against the golden file under
// testdata. Run the tests with -update to rewrite the golden files.
func AssertGoldenString(t *testing.T, actual, filename string) {
	t.Helper()
	path := filepath.Join("testdata", filename)

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating golden dir: %s", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("updating golden file %s: %s", path, err)
		}
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden file %s: %s", path, err)
	}
	expected = normalize(expected)
	if !bytes.Equal(expected, normalize([]byte(actual))) {
		t.Errorf("output does not match golden file %s\nWANT:\n%s\nGOT:\n%s", path, expected, actual)
	}
}

func normalize(in []byte) []byte {
	return bytes.ReplaceAll(in, []byte("\r\n"), []byte("\n"))
}
