package testhelpers

import (
	"bytes"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

// updateGolden backs the '-update' flag for `go test`.
var updateGolden bool

func init() {
	flag.BoolVar(&updateGolden, "update", false, "update golden files")
}

// LoadGolden fetches the bytes previously saved under testdata/ with the
// given file name.
func LoadGolden(t *testing.T, goldfile string) []byte {
	t.Helper()
	expected, err := ioutil.ReadFile(filepath.Join("testdata", goldfile))
	if err != nil {
		t.Errorf("unable to load golden file %s, %v", goldfile, err)
	}
	return expected
}

// SaveGolden stores bytes for future uses of LoadGolden.
func SaveGolden(t *testing.T, goldfile string, contents []byte) {
	t.Helper()
	if _, err := os.Stat("testdata"); os.IsNotExist(err) {
		if err := os.Mkdir("testdata", 0700); err != nil {
			t.Fatalf("unable to make testdata directory %v", err)
		}
	}

	fp := filepath.Join("testdata", goldfile)
	if err := ioutil.WriteFile(fp, contents, 0600); err != nil {
		t.Fatalf("unable to write golden file %s, %v", goldfile, err)
	}
}

// CompareGolden is shorthand for saving golden output if run with -update
// and then loading and comparing the golden against the given actual
// bytes.  With -update it always succeeds.
func CompareGolden(t *testing.T, tname string, goldfile string, actual []byte) bool {
	t.Helper()

	if updateGolden {
		SaveGolden(t, goldfile, actual)
	}
	expected := LoadGolden(t, goldfile)
	if !bytes.Equal(actual, expected) {
		t.Errorf("%v: got: [%v] expecting: [%v]", tname, string(actual), string(expected))
		return false
	}
	return true
}
