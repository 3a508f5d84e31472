// Command jsonlint validates a JSON document and optionally reformats it.
// It reads from stdin, or from a file given as its one positional argument.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchjson/jsoncore/encode"
	"github.com/couchjson/jsoncore/encoding"
	"github.com/couchjson/jsoncore/jsontree"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	indent := fs.String("indent", "", "reformat output using this string as one indent level (e.g. \"  \")")
	quiet := fs.Bool("q", false, "suppress output; report only the exit status")
	escapeNonASCII := fs.Bool("ascii", false, "escape non-ASCII characters as \\uXXXX in the output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var r io.Reader = stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, "jsonlint:", err)
			return 2
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(stderr, "jsonlint: reading input:", err)
		return 2
	}

	form, _, err := encoding.Sniff(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintln(stderr, "jsonlint: sniffing encoding:", err)
		return 2
	}

	val, err := jsontree.ParseBytes(data)
	if err != nil {
		fmt.Fprintln(stderr, "jsonlint:", err)
		return 1
	}

	if *quiet {
		return 0
	}

	var opts encode.Options
	if *escapeNonASCII {
		opts |= encode.EscapeNonASCII
	}

	var out []byte
	if *indent != "" {
		out, err = jsontree.MarshalIndent(val, *indent, opts)
	} else {
		out, err = jsontree.Marshal(val, opts)
	}
	if err != nil {
		fmt.Fprintln(stderr, "jsonlint: reformatting:", err)
		return 1
	}

	fmt.Fprintf(stderr, "jsonlint: input encoding %s, valid JSON\n", form)
	fmt.Fprintln(stdout, string(out))
	return 0
}
