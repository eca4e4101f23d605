// Command dremelcat is a small driver for the dremel package: it
// shreds and reassembles records against a schema file and prints
// what it finds, in the spirit of the teacher project's cmd/ptools.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "shred":
		err = runShred(os.Args[2:])
	case "assemble":
		err = runAssemble(os.Args[2:])
	case "fsm":
		err = runFSM(os.Args[2:])
	case "demo":
		err = runDemo(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "dremelcat: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		perrorf("%s", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: dremelcat <command> [flags]

commands:
  shred     shred a JSON record stream into columns and print them
  assemble  shred then reassemble a JSON record stream, print the result
  fsm       print the assembly transition table for a schema
  demo      run the Dremel-paper worked example end to end`)
}

func perrorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "dremelcat: "+format+"\n", args...)
}
