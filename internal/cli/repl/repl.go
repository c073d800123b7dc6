package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/frezcirno/Rudis/internal/cli/output"
	"github.com/frezcirno/Rudis/internal/resp"
)

// Executor runs one tokenized command and returns the decoded reply.
// *connection.Client satisfies it.
type Executor interface {
	DoStrings(args ...string) (resp.Value, error)
}

// REPL is the interactive prompt loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	completer *Completer
	history   *History
	prompt    string
}

// New creates a REPL reading from stdin and writing to stdout. The
// history is persisted to historyFile; an empty path keeps history in
// memory only.
func New(exec Executor, historyFile string) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		exec:      exec,
		completer: NewCompleter(),
		history:   NewHistory(historyFile),
	}
}

// Run starts the loop and returns when the user exits or input ends.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "Warning: could not load history: %v\n", err)
	}
	defer r.history.Save()

	prompt := r.prompt
	if prompt == "" {
		prompt = "rudis> "
	}

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, prompt)

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		r.execute(line)
	}
}

func (r *REPL) execute(line string) {
	args := strings.Fields(line)

	v, err := r.exec.DoStrings(args...)
	if err != nil {
		fmt.Fprintf(r.output, "Error: %v\n", err)
		return
	}
	output.Fprint(r.output, v)
}
