// emit.go -- render a constructed table as Go source text
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
	"io"
)

// Literal is implemented by value types that know how to render themselves
// as a Go source expression. Built-in kinds (the integer kinds, float32,
// float64, string, bool) already render correctly via fmt and never need
// this; it exists for user-defined struct/array types that Emit{RawMap,
// Map,Set} are asked to embed.
//
// This is a deliberately narrow stand-in for a fully general constant
// expression renderer: it covers the common case (a flat struct of
// emittable fields) and nothing more. Types with unexported fields,
// pointers, or maps cannot implement it meaningfully and should be
// marshalled to a byte/string form before being given to the emitter.
type Literal interface {
	// GoLiteral returns a Go source expression (e.g. "42", `"abc"`,
	// "pkg.Point{X: 1, Y: 2}") evaluating to a copy of the receiver.
	GoLiteral() string
}

func goLiteral(v any) string {
	if l, ok := v.(Literal); ok {
		return l.GoLiteral()
	}
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []byte:
		return fmt.Sprintf("%#v", x)
	default:
		return fmt.Sprintf("%#v", x)
	}
}

func emitHeader(w io.Writer, pkg string) error {
	_, err := fmt.Fprintf(w, "// Code generated by pthashgen. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	return err
}

func emitUint16Slice(w io.Writer, name string, v []uint16) error {
	fmt.Fprintf(w, "var %s = []uint16{", name)
	for i, p := range v {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "%d", p)
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

func emitUint32Slice(w io.Writer, name string, v []uint32) error {
	fmt.Fprintf(w, "var %s = []uint32{", name)
	for i, p := range v {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "%d", p)
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

// EmitRawMap writes a Go source file defining varName as a package-level
// *pthash.RawMap[K, V], reconstructed at init time from the table's seed,
// pilots, values and free list. pkg is the package name the generated
// file declares. valueType is the literal Go type name for V (e.g.
// "int", "string", "mypkg.Point"); literal renders a single value as a Go
// expression, defaulting to goLiteral (fmt-based, or the Literal
// interface) when nil.
func EmitRawMap[K any, V any](w io.Writer, pkg, varName, keyType, valueType string, m *RawMap[K, V], literal func(V) string) error {
	if literal == nil {
		literal = func(v V) string { return goLiteral(v) }
	}

	if err := emitHeader(w, pkg); err != nil {
		return err
	}

	fmt.Fprintf(w, "import \"github.com/opencoff/go-pthash\"\n\n")

	if err := emitUint16Slice(w, varName+"Pilots", m.Pilots()); err != nil {
		return err
	}
	if err := emitUint32Slice(w, varName+"Free", m.Free()); err != nil {
		return err
	}

	fmt.Fprintf(w, "var %sValues = []%s{", varName, valueType)
	for i, v := range m.RawValues() {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, literal(v))
	}
	fmt.Fprint(w, "}\n\n")

	fmt.Fprintf(w, "var %s = pthash.NewRawMap[%s, %s](%d, %sPilots, %sValues, %sFree)\n",
		varName, keyType, valueType, m.Seed(), varName, varName, varName)

	return nil
}

// EmitMap writes a Go source file defining varName as a package-level
// *pthash.Map[K, V].
func EmitMap[K comparable, V any](w io.Writer, pkg, varName, keyType, valueType string, m *Map[K, V], keyLiteral func(K) string, valLiteral func(V) string) error {
	if keyLiteral == nil {
		keyLiteral = func(k K) string { return goLiteral(k) }
	}
	if valLiteral == nil {
		valLiteral = func(v V) string { return goLiteral(v) }
	}

	if err := emitHeader(w, pkg); err != nil {
		return err
	}
	fmt.Fprintf(w, "import \"github.com/opencoff/go-pthash\"\n\n")

	if err := emitUint16Slice(w, varName+"Pilots", m.Pilots()); err != nil {
		return err
	}
	if err := emitUint32Slice(w, varName+"Free", m.Free()); err != nil {
		return err
	}

	keys, values := m.RawEntries()

	fmt.Fprintf(w, "var %sKeys = []%s{", varName, keyType)
	for i, k := range keys {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, keyLiteral(k))
	}
	fmt.Fprint(w, "}\n\n")

	fmt.Fprintf(w, "var %sValues = []%s{", varName, valueType)
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, valLiteral(v))
	}
	fmt.Fprint(w, "}\n\n")

	fmt.Fprintf(w, "var %s = pthash.NewMap[%s, %s](%d, %sPilots, %sKeys, %sValues, %sFree)\n",
		varName, keyType, valueType, m.Seed(), varName, varName, varName, varName)

	return nil
}

// EmitSet writes a Go source file defining varName as a package-level
// *pthash.Set[K].
func EmitSet[K comparable](w io.Writer, pkg, varName, keyType string, s *Set[K], literal func(K) string) error {
	if literal == nil {
		literal = func(k K) string { return goLiteral(k) }
	}

	if err := emitHeader(w, pkg); err != nil {
		return err
	}
	fmt.Fprintf(w, "import \"github.com/opencoff/go-pthash\"\n\n")

	if err := emitUint16Slice(w, varName+"Pilots", s.Pilots()); err != nil {
		return err
	}
	if err := emitUint32Slice(w, varName+"Free", s.Free()); err != nil {
		return err
	}

	fmt.Fprintf(w, "var %sElements = []%s{", varName, keyType)
	for i, k := range s.RawElements() {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, literal(k))
	}
	fmt.Fprint(w, "}\n\n")

	fmt.Fprintf(w, "var %s = pthash.NewSet[%s](%d, %sPilots, %sElements, %sFree)\n",
		varName, keyType, s.Seed(), varName, varName, varName)

	return nil
}
