package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dynvar/digest"
	"dynvar/jsonio"
	"dynvar/trace"
	"dynvar/types"
	"dynvar/yamlio"
)

// options collects the command line
type options struct {
	in      string
	format  string
	path    string
	as      string
	base    int
	out     string
	indent  string
	hash    string
	hmacKey string
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "-", "Input document file (- for stdin)")
	flag.StringVar(&opts.format, "format", "", "Input format: json or yaml (default: from the file extension, else json)")
	flag.StringVar(&opts.path, "path", "", "Dotted path to select (e.g., servers.0.host)")
	flag.StringVar(&opts.as, "as", "", "Coerce the selection: string|int|uint|float|bool|keys|values|size")
	flag.IntVar(&opts.base, "base", 0, "Base for integral coercion of text (default 10)")
	flag.StringVar(&opts.out, "out", "json", "Output format: json or yaml")
	flag.StringVar(&opts.indent, "indent", "", "JSON indent string (compact when empty)")
	flag.StringVar(&opts.hash, "hash", "", "Print a digest instead of the value (md5, sha1, sha224, sha256, sha384, sha512, ripemd160)")
	flag.StringVar(&opts.hmacKey, "hmac-key", "", "Key for an HMAC digest (requires -hash)")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable tracing to stderr")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'lookup' or 'co*')")
	listAlgorithms := flag.Bool("list-algorithms", false, "List digest algorithms and exit")

	flag.Parse()

	if *listAlgorithms {
		for _, algo := range digest.Algorithms() {
			fmt.Println(algo)
		}
		return
	}

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
		log.Printf("Tracing enabled (filters: %v)", filters)
	} else {
		trace.Init(false, nil, nil)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the document, selects and converts it, and writes the result
func run(opts options, stdin io.Reader, stdout io.Writer) error {
	doc, err := load(opts, stdin)
	if err != nil {
		return err
	}

	v, err := navigate(doc, opts.path)
	if err != nil {
		return err
	}

	if opts.as != "" {
		if v, err = coerce(v, opts.as, opts.base); err != nil {
			return err
		}
	}

	if opts.hash != "" || opts.hmacKey != "" {
		var sum string
		if opts.hmacKey != "" {
			sum, err = digest.HMAC(v, []byte(opts.hmacKey), opts.hash)
		} else {
			sum, err = digest.Sum(v, opts.hash)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, sum)
		return err
	}

	return write(stdout, v, opts.out, opts.indent)
}

// inputFormat picks the decoder for a file name
func inputFormat(format, name string) (string, error) {
	switch strings.ToLower(format) {
	case "json", "yaml":
		return strings.ToLower(format), nil
	case "yml":
		return "yaml", nil
	case "":
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	default:
		return "", fmt.Errorf("unknown input format: %s", format)
	}
}

func load(opts options, stdin io.Reader) (types.Value, error) {
	format, err := inputFormat(opts.format, opts.in)
	if err != nil {
		return types.Value{}, err
	}

	var data []byte
	if opts.in == "" || opts.in == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(opts.in)
	}
	if err != nil {
		return types.Value{}, fmt.Errorf("read input: %w", err)
	}
	trace.Convert("read", format, len(data))

	if format == "yaml" {
		return yamlio.FromYAML(string(data))
	}
	return jsonio.FromJSON(string(data))
}

// navigate resolves a dotted path read-only. A missing element is Undefined.
func navigate(doc types.Value, path string) (types.Value, error) {
	if path == "" {
		return doc, nil
	}
	res, err := doc.Lookup(types.NewString(path))
	if err != nil {
		return types.Value{}, err
	}
	if trace.IsEnabled() {
		traceWalk(doc, path)
	}
	return res, nil
}

// traceWalk reports each segment the way Lookup resolves it
func traceWalk(doc types.Value, path string) {
	cur := doc
	for _, seg := range types.ParsePath(path) {
		next, err := cur.Get(segmentKey(cur, seg))
		if err != nil || next.IsUndefined() {
			trace.Miss("lookup", path, seg)
			return
		}
		trace.Step("lookup", path, seg, next.Kind())
		cur = next
	}
}

// segmentKey reads a path segment as an array index when it can be one
func segmentKey(cur types.Value, seg string) types.Value {
	if cur.IsArray() {
		if n, err := strconv.ParseUint(seg, 10, 64); err == nil {
			return types.NewUint(n)
		}
	}
	return types.NewString(seg)
}

func coerce(v types.Value, as string, base int) (types.Value, error) {
	var out types.Value
	var err error
	switch as {
	case "keys":
		out = v.Keys()
	case "values":
		out = v.Values()
	case "size":
		var n int
		if n, err = v.Size(); err == nil {
			out = types.NewInt(int64(n))
		}
	default:
		kind, ok := types.KindFromString(as)
		if !ok {
			return types.Value{}, fmt.Errorf("unknown -as target: %s", as)
		}
		out, err = v.CoerceTo(kind, types.CoerceOptions{Base: base})
	}
	trace.Coerce(v.Kind(), as, err)
	return out, err
}

func write(w io.Writer, v types.Value, format, indent string) error {
	var text string
	var err error
	switch strings.ToLower(format) {
	case "json", "":
		format = "json"
		if indent != "" {
			text, err = jsonio.ToJSONIndent(v, indent)
		} else {
			text, err = jsonio.ToJSON(v)
		}
		text += "\n"
	case "yaml", "yml":
		format = "yaml"
		text, err = yamlio.ToYAML(v)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if err != nil {
		return err
	}
	trace.Convert("write", format, len(text))
	_, err = io.WriteString(w, text)
	return err
}
