// dump.go -- 'dump' command implementation
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

	"github.com/opencoff/go-pthash"
	flag "github.com/opencoff/pflag"
)

type dumpCommand struct{}

func init() {
	m := dumpCommand{}
	registerCommand("dump", &m)
}

func (m *dumpCommand) run(args []string, opt *Option) (err error) {
	var all, meta bool
	var rd *pthash.FileStoreReader

	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&all, "all", "a", false, "Dump keys and values")
	fs.BoolVarP(&meta, "meta", "m", false, "Dump only metadata")
	fs.Usage = func() {
		fmt.Printf(`Usage: dump [options] OUT

where 'OUT' is the name of a PTHash artifact file

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("dump: insufficient args")
	}

	fn := args[0]
	rd, err = pthash.OpenFileStore(fn, 1000)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer rd.Close()

	if meta {
		fmt.Println(rd.Desc())
	} else if all {
		rd.IterFunc(func(k string, v []byte) error {
			fmt.Printf("%s: %x\n", k, v)
			return nil
		})
	} else {
		rd.IterFunc(func(k string, _ []byte) error {
			fmt.Println(k)
			return nil
		})
	}
	return nil
}
