package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

const (
	promptMain  = "> "
	promptCont  = "... "
	historyFile = "history"
)

// lineEditor is the slice of *liner.State the REPL loop needs.
type lineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func (c *cli) runREPL() int {
	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		fmt.Fprintf(c.stderr, "warning: ignoring manifest (%v)\n", err)
		manifest = nil
	}
	histPath := c.historyPath(manifest)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	opts := c.options(manifest)
	opts.Input = editorInput{ed: ln}
	session := interpreter.NewSession(opts)
	return c.replLoop(ln, session)
}

// editorInput serves input() from the line editor. Liner buffers stdin
// itself when it is not a terminal, so a second reader would lose lines.
type editorInput struct {
	ed lineEditor
}

func (e editorInput) ReadLine() (string, error) {
	line, err := e.ed.Prompt("")
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\r"), nil
}

// historyPath prefers the manifest's history_file, relative to the
// manifest, and falls back to $LOX_HOME/history.
func (c *cli) historyPath(manifest *driver.Manifest) string {
	if manifest != nil && manifest.Interpreter.HistoryFile != "" {
		path := filepath.FromSlash(manifest.Interpreter.HistoryFile)
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(filepath.Dir(manifest.Path), path)
	}
	home, err := driver.ResolveHome()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func (c *cli) replLoop(ed lineEditor, session *interpreter.Session) int {
	for {
		code, ok := readChunk(ed)
		if !ok {
			fmt.Fprintln(c.stdout)
			return exitOK
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ed.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		result := session.Eval(code)
		if err := result.WriteDiagnostics(c.stderr); err != nil {
			return exitFailure
		}
	}
}

// readChunk collects lines until they form a complete input. Ctrl-C drops
// the pending input; EOF ends the session.
func readChunk(ed lineEditor) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ed.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !interpreter.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}
