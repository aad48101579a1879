package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

const cliToolVersion = "lox-cli 0.0.0-dev"

// Exit statuses follow the sysexits convention.
const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	strict bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	var rest []string
	for _, arg := range args {
		if arg == "--strict" {
			c.strict = true
			continue
		}
		rest = append(rest, arg)
	}

	if len(rest) == 0 {
		return c.runREPL()
	}

	switch rest[0] {
	case "--help", "-h", "help":
		c.printUsage(stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return exitOK
	case "run":
		return c.runEntry(rest[1:])
	case "tokens":
		return c.runTokens(rest[1:])
	case "ast":
		return c.runAST(rest[1:])
	default:
		if strings.HasPrefix(rest[0], "-") {
			fmt.Fprintf(stderr, "unknown flag %s\n", rest[0])
			c.printUsage(stderr)
			return exitUsage
		}
		if len(rest) > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(rest[1:], " "))
			c.printUsage(stderr)
			return exitUsage
		}
		return c.runFile(rest[0])
	}
}

// runEntry runs a manifest target, or a file when the argument is not a
// known target.
func (c *cli) runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitUsage
	}

	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		if len(args) == 1 && looksLikePathCandidate(args[0]) {
			fmt.Fprintf(c.stderr, "warning: unable to load manifest (%v); falling back to direct file execution\n", err)
			return c.runFile(args[0])
		}
		fmt.Fprintf(c.stderr, "failed to load manifest: %v\n", err)
		return exitFailure
	}

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintln(c.stderr, "lox run requires a manifest target or source file (lox.yml not found)")
			return exitUsage
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(c.stderr, "manifest error: %v\n", err)
			return exitFailure
		}
		return c.runTarget(manifest, target)
	}

	if manifest != nil {
		if target, ok := manifest.FindTarget(args[0]); ok {
			return c.runTarget(manifest, target)
		}
	}
	return c.runFile(args[0])
}

func (c *cli) runTarget(manifest *driver.Manifest, target *driver.TargetSpec) int {
	home, err := driver.ResolveHome()
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to resolve %s: %v\n", driver.HomeEnv, err)
		return exitFailure
	}
	src, err := driver.NewLoader(home).LoadTarget(manifest, target)
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load target %q: %v\n", target.OriginalName, err)
		return exitFailure
	}
	return c.execute(src.Text, c.options(manifest))
}

func (c *cli) runFile(path string) int {
	src, err := driver.NewLoader("").LoadFile(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load program: %v\n", err)
		return exitFailure
	}

	// A nearby manifest still supplies interpreter settings.
	manifest, err := loadManifestFrom(filepath.Dir(src.Path))
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		fmt.Fprintf(c.stderr, "warning: ignoring manifest (%v)\n", err)
		manifest = nil
	}
	return c.execute(src.Text, c.options(manifest))
}

func (c *cli) execute(source string, opts interpreter.Options) int {
	result := interpreter.New(opts).Run(source)
	if err := result.WriteDiagnostics(c.stderr); err != nil {
		return exitFailure
	}
	return exitStatus(result.Status)
}

func (c *cli) options(manifest *driver.Manifest) interpreter.Options {
	opts := interpreter.Options{
		Stdout:           c.stdout,
		Stdin:            c.stdin,
		StrictUnassigned: c.strict,
	}
	if manifest != nil && manifest.Interpreter.StrictUnassigned {
		opts.StrictUnassigned = true
	}
	return opts
}

func exitStatus(status interpreter.Status) int {
	switch status {
	case interpreter.StatusCompileError:
		return exitCompileError
	case interpreter.StatusRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

// runTokens prints one token per line as LINE KIND LEXEME [LITERAL].
func (c *cli) runTokens(args []string) int {
	source, code := c.readSingleFile("tokens", args)
	if code != exitOK {
		return code
	}
	diags := driver.NewDiagnostics()
	for _, tok := range lexer.Scan(source, diags) {
		fmt.Fprintf(c.stdout, "%d %s\n", tok.Line, tok)
	}
	return c.reportCompile(diags)
}

// runAST prints each parsed statement in prefix form.
func (c *cli) runAST(args []string) int {
	source, code := c.readSingleFile("ast", args)
	if code != exitOK {
		return code
	}
	diags := driver.NewDiagnostics()
	stmts := parser.Parse(lexer.Scan(source, diags), diags)
	if diags.HasCompileErrors() {
		return c.reportCompile(diags)
	}
	for _, stmt := range stmts {
		fmt.Fprintln(c.stdout, ast.PrintStatement(stmt))
	}
	return exitOK
}

func (c *cli) readSingleFile(command string, args []string) (string, int) {
	if len(args) != 1 {
		fmt.Fprintf(c.stderr, "lox %s requires exactly one source file\n", command)
		return "", exitUsage
	}
	src, err := driver.NewLoader("").LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load program: %v\n", err)
		return "", exitFailure
	}
	return src.Text, exitOK
}

func (c *cli) reportCompile(diags *driver.Diagnostics) int {
	for _, diag := range diags.Items() {
		fmt.Fprintln(c.stderr, driver.DescribeDiagnostic(diag))
	}
	if diags.HasCompileErrors() {
		return exitCompileError
	}
	return exitOK
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	manifestPath, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.Contains(arg, "/") || strings.Contains(arg, "\\") {
		return true
	}
	if filepath.Ext(arg) == ".lox" {
		return true
	}
	return strings.HasPrefix(arg, ".")
}

var usageLines = []string{
	"lox [--strict]                 start the REPL",
	"lox [--strict] <file.lox>",
	"lox [--strict] run [target]",
	"lox [--strict] run <file.lox>",
	"lox tokens <file.lox>",
	"lox ast <file.lox>",
}

func (c *cli) printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range usageLines {
		fmt.Fprintln(w, "  "+line)
	}
}
