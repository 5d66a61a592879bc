// helpers_test.go - helper routines for tests
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package pthash

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

// corruptFileByte flips a single byte in fn at offset off, used to verify
// that readers reject tampered artifacts.
func corruptFileByte(t *testing.T, fn string, off int64) {
	fd, err := os.OpenFile(fn, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("corruptFileByte: open %s: %s", fn, err)
	}
	defer fd.Close()

	var b [1]byte
	if _, err := fd.ReadAt(b[:], off); err != nil {
		t.Fatalf("corruptFileByte: read %s: %s", fn, err)
	}
	b[0] ^= 0xff
	if _, err := fd.WriteAt(b[:], off); err != nil {
		t.Fatalf("corruptFileByte: write %s: %s", fn, err)
	}
}

var keyw = []string{
	"expectoration",
	"mizzenmastman",
	"stockfather",
	"pictorialness",
	"villainous",
	"unquality",
	"sized",
	"Tarahumari",
	"endocrinotherapy",
	"quicksandy",
	"heretics",
	"pediment",
	"spleen's",
	"Shepard's",
	"paralyzed",
	"megahertzes",
	"Richardson's",
	"mechanics's",
	"Springfield",
	"burlesques",
}
