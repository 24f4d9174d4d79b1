// Command crawl mirrors a website into a directory of markdown files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/markdownify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		msg := markdownify.ErrorMessage(err)
		if markdownify.ErrorCode(err) == markdownify.EINTERNAL {
			msg = err.Error()
		}
		fmt.Fprintln(os.Stderr, msg)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
// It returns ErrNothingWritten when the crawl finished without writing a page.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crawl"),
		kong.Description("Crawl a website breadth-first and write each page as markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return markdownify.Errorf(markdownify.EINVALID, "no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return markdownify.Errorf(markdownify.EINVALID, "%v", err)
	}

	deps, err := cli.wire(stderr)
	if err != nil {
		return err
	}
	defer deps.Close()

	cmd := &CrawlCmd{
		StartURL:  cli.StartURL,
		OutputDir: cli.OutputDir,
		MaxPages:  cli.MaxPages,
	}
	return cmd.Run(ctx, deps, stdout)
}
