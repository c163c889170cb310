// texelfmt inspects the hardware texture format catalog.
//
// Usage:
//
//	texelfmt [options] list
//	texelfmt [options] describe <NAME>
//	texelfmt [options] match <fields>
//	texelfmt [options] check
//
// Options:
//
//	-s, --storage KIND  Buffer element kind for match (default: narrowest fit).
//	-p, --packed        Match packed formats.
//	--srgb              Match sRGB formats.
//	-v, --verbose       Log catalog matching to stderr.
//	-h, --help          Show this help message.
//	--version           Show version information.
//
// Exit codes:
//
//	0: Success
//	1: Unknown or unmatched format, or invalid catalog
//	2: Usage error
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"

	texel "github.com/mrjoshuak/go-texel"
	"github.com/mrjoshuak/go-texel/buffer"
	"github.com/mrjoshuak/go-texel/format"
	"github.com/mrjoshuak/go-texel/hwformat"
)

const version = "1.0.0"

// exitUsage is returned by run for malformed command lines.
const exitUsage = 2

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		storage  buffer.Kind
		packed   bool
		srgb     bool
		verbose  bool
		commands []string
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			printUsage(stdout)
			return 0
		case "--version":
			fmt.Fprintf(stdout, "texelfmt version %s\n", version)
			return 0
		case "-p", "--packed":
			packed = true
		case "--srgb":
			srgb = true
		case "-v", "--verbose":
			verbose = true
		case "-s", "--storage":
			if i+1 >= len(args) {
				fmt.Fprintf(stderr, "Option %s needs a value\n", arg)
				return exitUsage
			}
			i++
			k, ok := buffer.ParseKind(args[i])
			if !ok {
				fmt.Fprintf(stderr, "Unknown storage kind: %s\n", args[i])
				return exitUsage
			}
			storage = k
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(stderr, "Unknown option: %s\n", arg)
				printUsage(stderr)
				return exitUsage
			}
			commands = append(commands, arg)
		}
	}

	if verbose {
		texel.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer texel.SetLogger(nil)
	}

	if len(commands) == 0 {
		fmt.Fprintln(stderr, "Error: no command specified")
		printUsage(stderr)
		return exitUsage
	}

	cmd, rest := commands[0], commands[1:]
	want := map[string]int{"list": 0, "check": 0, "describe": 1, "match": 1}
	n, known := want[cmd]
	if !known {
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return exitUsage
	}
	if len(rest) != n {
		fmt.Fprintf(stderr, "Error: %s takes %d argument(s), got %d\n", cmd, n, len(rest))
		return exitUsage
	}

	switch cmd {
	case "list":
		return list(stdout)
	case "check":
		return check(stdout, stderr)
	case "describe":
		return describe(stdout, stderr, rest[0])
	default:
		return match(stdout, stderr, rest[0], storage, packed, srgb)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: texelfmt [options] <command> [argument]

Inspect the hardware texture format catalog.

Commands:
  list             List every catalog entry and its WebGPU format.
  describe NAME    Show the fields, storage and WebGPU format of an entry.
  match FIELDS     Find the entry for a field list such as unorm8:R,unorm8:G.
  check            Validate the catalog.

Options:
  -s, --storage KIND  Buffer element kind for match (default: narrowest fit).
  -p, --packed        Match packed formats.
  --srgb              Match sRGB formats.
  -v, --verbose       Log catalog matching to stderr.
  -h, --help          Show this help message.
  --version           Show version information.

Exit codes:
  0  Success
  1  Unknown or unmatched format, or invalid catalog
  2  Usage error

Examples:
  texelfmt describe R5G6B5_UNORM_PACK16
  texelfmt match unorm8:R,unorm8:G,unorm8:B,unorm8:A
  texelfmt --packed match unorm5:R,unorm6:G,unorm5:B
  texelfmt --srgb -s uint8 match unorm8:B,unorm8:G,unorm8:R,unorm8:A`)
}

func list(w io.Writer) int {
	for _, e := range hwformat.Catalog() {
		fmt.Fprintf(w, "%-32s %s\n", e.Name, webgpuName(e.WebGPU))
	}
	return 0
}

func check(stdout, stderr io.Writer) int {
	entries := hwformat.Catalog()
	if err := hwformat.Validate(entries); err != nil {
		fmt.Fprintf(stderr, "catalog: INVALID\n  %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "catalog: OK (%d entries)\n", len(entries))
	return 0
}

func describe(stdout, stderr io.Writer, name string) int {
	e, ok := hwformat.Lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "Unknown format: %s\n", name)
		return 1
	}
	printEntry(stdout, e)
	return 0
}

func match(stdout, stderr io.Writer, fields string, storage buffer.Kind, packed, srgb bool) int {
	f, err := format.Parse(fields)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if storage == buffer.Invalid {
		storage = hwformat.StorageFor(f, packed)
	}
	e, err := hwformat.Match(hwformat.Query{Format: f, Storage: storage, Packed: packed, SRGB: srgb})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if e.IsUndefined() {
		fmt.Fprintf(stdout, "%s: no match for %s storage\n", f, storage)
		return 1
	}
	printEntry(stdout, e)
	return 0
}

func printEntry(w io.Writer, e hwformat.Entry) {
	fmt.Fprintf(w, "Name:       %s\n", e.Name)
	fmt.Fprintf(w, "Kind:       %s\n", e.Kind)
	switch {
	case e.Compressed:
		fmt.Fprintf(w, "Block:      %d bits\n", e.PrimitiveBits)
	case e.Packed:
		fmt.Fprintf(w, "Packed:     %d bits\n", e.PrimitiveBits)
	default:
		fmt.Fprintf(w, "Element:    %d bits\n", e.PrimitiveBits)
	}
	if f, err := e.Format(); err == nil {
		fmt.Fprintf(w, "Fields:     %s\n", f)
		fmt.Fprintf(w, "Storage:    %s\n", e.Storage())
	}
	fmt.Fprintf(w, "WebGPU:     %s\n", webgpuName(e.WebGPU))
}

func webgpuName(tf gputypes.TextureFormat) string {
	if tf == gputypes.TextureFormatUndefined {
		return "-"
	}
	return tf.String()
}
