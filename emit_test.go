// emit_test.go -- test suite for the Go-source emitter
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
	"bytes"
	"strings"
	"testing"
)

func TestEmitRawMap(t *testing.T) {
	assert := newAsserter(t)

	values := make([]int, len(keyw))
	for i := range keyw {
		values[i] = i
	}
	m, err := BuildRawMap[string, int](keyw, values)
	assert(err == nil, "BuildRawMap failed: %s", err)

	var buf bytes.Buffer
	err = EmitRawMap[string, int](&buf, "fixtures", "Words", "string", "int", m, nil)
	assert(err == nil, "EmitRawMap failed: %s", err)

	out := buf.String()
	assert(strings.Contains(out, "package fixtures"), "missing package clause:\n%s", out)
	assert(strings.Contains(out, "var WordsPilots = []uint16{"), "missing pilots var:\n%s", out)
	assert(strings.Contains(out, "var WordsFree = []uint32{"), "missing free var:\n%s", out)
	assert(strings.Contains(out, "var WordsValues = []int{"), "missing values var:\n%s", out)
	assert(strings.Contains(out, "pthash.NewRawMap[string, int]("), "missing reconstruction call:\n%s", out)
}

func TestEmitMap(t *testing.T) {
	assert := newAsserter(t)

	values := make([]string, len(keyw))
	for i, k := range keyw {
		values[i] = strings.ToUpper(k)
	}
	m, err := BuildMap[string, string](keyw, values)
	assert(err == nil, "BuildMap failed: %s", err)

	var buf bytes.Buffer
	err = EmitMap[string, string](&buf, "fixtures", "Words", "string", "string", m, nil, nil)
	assert(err == nil, "EmitMap failed: %s", err)

	out := buf.String()
	assert(strings.Contains(out, "var WordsKeys = []string{"), "missing keys var:\n%s", out)
	assert(strings.Contains(out, "var WordsValues = []string{"), "missing values var:\n%s", out)
	assert(strings.Contains(out, "pthash.NewMap[string, string]("), "missing reconstruction call:\n%s", out)

	for _, k := range keyw {
		assert(strings.Contains(out, `"`+k+`"`), "emitted output missing key literal %q", k)
	}
}

func TestEmitSet(t *testing.T) {
	assert := newAsserter(t)

	s, err := BuildSet[string](keyw)
	assert(err == nil, "BuildSet failed: %s", err)

	var buf bytes.Buffer
	err = EmitSet[string](&buf, "fixtures", "Words", "string", s, nil)
	assert(err == nil, "EmitSet failed: %s", err)

	out := buf.String()
	assert(strings.Contains(out, "var WordsElements = []string{"), "missing elements var:\n%s", out)
	assert(strings.Contains(out, "pthash.NewSet[string]("), "missing reconstruction call:\n%s", out)
}

type point3 struct{ x, y, z int }

func (p point3) GoLiteral() string {
	return "point3{1, 2, 3}"
}

func TestGoLiteralFallsBackToInterface(t *testing.T) {
	assert := newAsserter(t)
	assert(goLiteral(point3{1, 2, 3}) == "point3{1, 2, 3}", "goLiteral didn't use the Literal interface")
	assert(goLiteral("abc") == `"abc"`, "goLiteral(string) = %s", goLiteral("abc"))
}
