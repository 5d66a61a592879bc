// make.go -- 'make' command implementation
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

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/opencoff/go-pthash"
	flag "github.com/opencoff/pflag"
)

type makeCommand struct{}

func init() {
	m := makeCommand{}
	registerCommand("make", &m)
}

// memAdder accumulates (key, value) pairs in memory for the "go" emit
// format, which needs the whole key/value set at once to call BuildMap.
type memAdder struct {
	keys   []string
	values [][]byte
}

func (a *memAdder) Add(key string, val []byte) error {
	a.keys = append(a.keys, key)
	a.values = append(a.values, val)
	return nil
}

func (m *makeCommand) run(args []string, opt *Option) (err error) {
	var format, pkg, varName string
	var fw *pthash.FileStoreWriter

	defer func(e *error) {
		if *e != nil && fw != nil {
			fw.Abort()
		}
	}(&err)

	fs := flag.NewFlagSet("make", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.StringVarP(&format, "format", "f", "bin", "Emit `FMT`: 'bin' (mmap'able artifact) or 'go' (source file)")
	fs.StringVarP(&pkg, "pkg", "p", "main", "Use `PKG` as the package name for -format=go")
	fs.StringVarP(&varName, "var", "n", "Table", "Use `NAME` as the generated variable name for -format=go")
	fs.Usage = func() {
		fmt.Printf(`Usage: make [options] OUT [INPUT...]

where:
   OUT      is the name of the output file
   INPUT    is one or more optional input files

The input file(s) must have a name suffix of one of the following:
   .txt     a key,value per-line delimited by white space
   .csv     a comma-separated key,value file

options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("make: insufficient args")
	}

	fn := args[0]
	args = args[1:]

	var w adder
	var ma *memAdder

	switch format {
	case "bin":
		fw, err = pthash.NewFileStoreWriter(fn)
		if err != nil {
			return fmt.Errorf("make: can't create %s: %w", fn, err)
		}
		w = fw

	case "go":
		ma = &memAdder{}
		w = ma

	default:
		return fmt.Errorf("make: unknown format %q", format)
	}

	var tot uint64
	if len(args) > 0 {
		var n uint64
		for _, f := range args {
			switch {
			case strings.HasSuffix(f, ".txt"):
				n, err = AddTextFile(w, f, " \t")

			case strings.HasSuffix(f, ".csv"):
				n, err = AddCSVFile(w, f, ',', '#', 0, 1)

			default:
				return fmt.Errorf("make: don't know how to add %s", f)
			}

			if err != nil {
				return fmt.Errorf("make: can't add %s: %w", f, err)
			}

			opt.Printf("+ %s: %d records\n", f, n)
			tot += n
		}
	} else {
		var n uint64

		n, err = AddTextStream(w, os.Stdin, " \t")
		if err != nil {
			return fmt.Errorf("make: can't add text from stdin: %w", err)
		}

		opt.Printf("+ <STDIN>: %d records\n", n)
		tot += n
	}

	start := time.Now()
	switch format {
	case "bin":
		err = fw.Freeze()
		if err != nil {
			return fmt.Errorf("make: can't write %s: %w", fn, err)
		}

	case "go":
		m, err := pthash.BuildMap[string, []byte](ma.keys, ma.values)
		if err != nil {
			return fmt.Errorf("make: can't build table: %w", err)
		}

		out, err := os.Create(fn)
		if err != nil {
			return fmt.Errorf("make: can't create %s: %w", fn, err)
		}
		defer out.Close()

		if err := pthash.EmitMap[string, []byte](out, pkg, varName, "string", "[]byte", m, nil, nil); err != nil {
			return fmt.Errorf("make: can't emit %s: %w", fn, err)
		}
	}
	delta := time.Since(start)
	speed := (1.0e6 * float64(tot)) / float64(delta.Microseconds()+1)
	opt.Printf("%d keys, %s (%3.1f keys/sec)\n", tot, delta.Truncate(time.Millisecond).String(), speed)

	return nil
}
