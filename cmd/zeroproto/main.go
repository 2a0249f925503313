// Command zeroproto-compile is the thin CLI shell over the ZeroProto
// schema compiler core (pkg/schema) and emission collaborator
// (pkg/codegen). It does file discovery, a watch loop, and project
// scaffolding -- no schema semantics live here.
//
// Usage:
//
//	zeroproto-compile compile [--output <dir>] <input>
//	zeroproto-compile watch [--output <dir>] <input>
//	zeroproto-compile check [--verbose] <input>
//	zeroproto-compile init [--current-dir] <project-name>
//
// Shared flags: --include <glob>, --exclude <glob>, --verbose.
//
// Flags must come before the positional argument: flag parsing stops at
// the first non-flag argument, and anything after it is rejected as a
// usage error.
//
// Exit codes: 0 success, 1 validation failure, 2 I/O failure, 3 usage error.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blockberries/zeroproto/pkg/codegen"
	"github.com/blockberries/zeroproto/pkg/schema"
)

const (
	exitSuccess = 0
	exitInvalid = 1
	exitIOError = 2
	exitUsage   = 3
)

func init() {
	codegen.Register(codegen.NewGoGenerator())
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitUsage)
	}

	switch os.Args[1] {
	case "compile":
		os.Exit(cmdCompile(os.Args[2:]))
	case "watch":
		os.Exit(cmdWatch(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "init":
		os.Exit(cmdInit(os.Args[2:]))
	case "help", "-h", "--help":
		printUsage()
		os.Exit(exitSuccess)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(exitUsage)
	}
}

func printUsage() {
	fmt.Println(`ZeroProto schema compiler

Usage:
  zeroproto-compile <command> [options] <args>

Options must come before <args>.

Commands:
  compile [--output <dir>] <input>   Compile schema files to Go source
  watch [--output <dir>] <input>     Recompile on change
  check [--verbose] <input>          Validate schema files without emitting code
  init [--current-dir] <project-name>  Scaffold a new schema project

Shared options:
  --include <glob>   Only process files matching glob
  --exclude <glob>   Skip files matching glob
  --verbose          Print additional diagnostic detail

Run 'zeroproto-compile <command> -h' for command-specific help.`)
}

// globFlag allows --include/--exclude to be repeated.
type globFlag []string

func (g *globFlag) String() string { return strings.Join(*g, ",") }

func (g *globFlag) Set(value string) error {
	*g = append(*g, value)
	return nil
}

func discoverInputs(root string, include, exclude globFlag) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".zp" {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if len(include) > 0 && !matchesAny(include, rel) {
			return nil
		}
		if matchesAny(exclude, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func matchesAny(globs []string, name string) bool {
	for _, g := range globs {
		if ok, _ := filepath.Match(g, name); ok {
			return true
		}
	}
	return false
}

func cmdCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	outDir := fs.String("output", ".", "output directory")
	verbose := fs.Bool("verbose", false, "print additional diagnostic detail")
	var include, exclude globFlag
	fs.Var(&include, "include", "only process files matching glob")
	fs.Var(&exclude, "exclude", "skip files matching glob")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "compile: expected exactly one <input> argument")
		return exitUsage
	}

	files, err := discoverInputs(fs.Arg(0), include, exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return exitIOError
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return exitIOError
	}

	gen, _ := codegen.Get(codegen.LanguageGo)
	hadInvalid := false
	hadIOError := false

	for _, path := range files {
		res, err := schema.CompileFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			hadIOError = true
			continue
		}
		if !res.OK() {
			reportDiagnostics(path, res)
			hadInvalid = true
			continue
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "compiling %s\n", path)
		}

		outName := strings.TrimSuffix(filepath.Base(path), ".zp") + gen.FileExtension()
		outPath := filepath.Join(*outDir, outName)
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", outPath, err)
			hadIOError = true
			continue
		}
		opts := codegen.DefaultOptions()
		opts.Package = filepath.Base(*outDir)
		genErr := gen.Generate(f, res.IR, opts)
		f.Close()
		if genErr != nil {
			os.Remove(outPath)
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, genErr)
			hadIOError = true
			continue
		}
		fmt.Printf("generated %s\n", outPath)
	}

	switch {
	case hadIOError:
		return exitIOError
	case hadInvalid:
		return exitInvalid
	default:
		return exitSuccess
	}
}

func cmdWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	outDir := fs.String("output", ".", "output directory")
	verbose := fs.Bool("verbose", false, "print additional diagnostic detail")
	var include, exclude globFlag
	fs.Var(&include, "include", "only process files matching glob")
	fs.Var(&exclude, "exclude", "skip files matching glob")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "watch: expected exactly one <input> argument")
		return exitUsage
	}
	root := fs.Arg(0)

	fmt.Fprintf(os.Stderr, "watching %s (Ctrl-C to stop)\n", root)
	mtimes := make(map[string]time.Time)

	compileOnce := func() {
		args := append([]string{"--output", *outDir}, includeExcludeArgs(include, exclude)...)
		if *verbose {
			args = append(args, "--verbose")
		}
		code := cmdCompile(append(args, root))
		if code != exitSuccess {
			fmt.Fprintf(os.Stderr, "watch: compile exited with code %d\n", code)
		}
	}
	compileOnce()

	for {
		time.Sleep(500 * time.Millisecond)
		files, err := discoverInputs(root, include, exclude)
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			return exitIOError
		}
		changed := false
		for _, f := range files {
			info, err := os.Stat(f)
			if err != nil {
				continue
			}
			if prev, ok := mtimes[f]; !ok || info.ModTime().After(prev) {
				mtimes[f] = info.ModTime()
				changed = true
			}
		}
		if changed {
			compileOnce()
		}
	}
}

func includeExcludeArgs(include, exclude globFlag) []string {
	var args []string
	for _, g := range include {
		args = append(args, "--include", g)
	}
	for _, g := range exclude {
		args = append(args, "--exclude", g)
	}
	return args
}

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "print the resolved schema structure")
	var include, exclude globFlag
	fs.Var(&include, "include", "only process files matching glob")
	fs.Var(&exclude, "exclude", "skip files matching glob")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "check: expected exactly one <input> argument")
		return exitUsage
	}

	files, err := discoverInputs(fs.Arg(0), include, exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		return exitIOError
	}

	hadInvalid := false
	hadIOError := false
	for _, path := range files {
		res, err := schema.CompileFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			hadIOError = true
			continue
		}
		if !res.OK() {
			reportDiagnostics(path, res)
			hadInvalid = true
			continue
		}
		fmt.Printf("%s: ok\n", path)
		if *verbose {
			schema.PrintSchema(os.Stdout, res.File)
		}
	}

	if hadIOError {
		return exitIOError
	}
	if hadInvalid {
		return exitInvalid
	}
	return exitSuccess
}

func reportDiagnostics(path string, res *schema.CompileResult) {
	if res.ParseError != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, res.ParseError)
		return
	}
	for _, e := range res.Validation {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, e)
	}
}

const initTemplate = `message Example {
  example_id: u64;
  name: string;
}
`

func cmdInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	currentDir := fs.Bool("current-dir", false, "scaffold into the current directory instead of a new one")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "init: expected exactly one <project-name> argument")
		return exitUsage
	}
	name := fs.Arg(0)

	dir := name
	if *currentDir {
		dir = "."
	}
	if err := os.MkdirAll(filepath.Join(dir, "schema"), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		return exitIOError
	}
	schemaPath := filepath.Join(dir, "schema", "example.zp")
	if err := os.WriteFile(schemaPath, []byte(initTemplate), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		return exitIOError
	}
	fmt.Printf("created %s\n", schemaPath)
	return exitSuccess
}
