package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	convex "github.com/get-convex/convex-go"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "normalize":
		normalizeCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "convexval CLI\n\nUsage:\n  convexval check [-yaml] [-field-names ascii|identifier] [file]\n  convexval normalize [-yaml] [-field-names ascii|identifier] [file]\n\nNotes:\n  - check validates a document against the Convex wire contract.\n  - normalize decodes and re-emits the canonical JSON encoding.\n  - With no file argument, input is read from stdin.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	useYAML := fs.Bool("yaml", false, "treat input as YAML instead of JSON")
	fieldNames := fs.String("field-names", "ascii", "field-name grammar: ascii or identifier")
	_ = fs.Parse(args)

	_, err := decodeInput(fs.Args(), *useYAML, *fieldNames)
	if err != nil {
		fatalf("check: %v", err)
	}
	fmt.Println("ok")
}

func normalizeCmd(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	useYAML := fs.Bool("yaml", false, "treat input as YAML instead of JSON")
	fieldNames := fs.String("field-names", "ascii", "field-name grammar: ascii or identifier")
	_ = fs.Parse(args)

	v, err := decodeInput(fs.Args(), *useYAML, *fieldNames)
	if err != nil {
		fatalf("normalize: %v", err)
	}
	out, err := convex.MarshalStrict(v)
	if err != nil {
		fatalf("normalize: %v", err)
	}
	fmt.Println(string(out))
}

func decodeInput(args []string, useYAML bool, fieldNames string) (convex.Value, error) {
	data, err := readInput(args)
	if err != nil {
		return nil, err
	}
	opt := convex.DecodeOpt{}
	switch fieldNames {
	case "ascii":
		opt.FieldNames = convex.FieldNameASCII
	case "identifier":
		opt.FieldNames = convex.FieldNameIdentifier
	default:
		return nil, fmt.Errorf("unknown field-name grammar %q", fieldNames)
	}
	var src convex.Source
	if useYAML {
		src = convex.YAMLBytes(data)
	} else {
		src = convex.JSONBytes(data)
	}
	return convex.DecodeFromWith(src, opt)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
