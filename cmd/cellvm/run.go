package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/cellvm/arena"
	"github.com/joshuapare/cellvm/arena/dirty"
	"github.com/joshuapare/cellvm/interp"
	"github.com/joshuapare/cellvm/internal/logger"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	cells    int
	mapped   bool
	encoding string
	dump     string
	changes  bool
	check    bool
	strict   bool
}

// runReport is what --dump prints after the script finishes.
type runReport struct {
	Summary  interp.Summary  `json:"summary"            yaml:"summary"`
	Stats    arena.Stats     `json:"stats"              yaml:"stats"`
	Memory   interp.Snapshot `json:"memory"             yaml:"memory"`
	Modified []dirty.Range   `json:"modified,omitempty" yaml:"modified,omitempty"`
}

func newRunCmd(cfg *rootConfig) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <script|->",
		Short: "Run a script",
		Long: `The run command executes a script line by line. Lines that fail to parse
or execute are reported on stderr and skipped unless --strict is given.

Example:
  cellvm run demo.cvm
  cellvm run --cells 1000 --dump yaml demo.cvm
  cat demo.cvm | cellvm run -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, cfg, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.cells, "cells", arena.DefaultCapacity, "Number of memory cells")
	cmd.Flags().BoolVar(&opts.mapped, "mapped", false, "Back the cells with an anonymous memory mapping")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "Script encoding when no BOM is present: utf-8, utf-16le, windows-1252")
	cmd.Flags().StringVar(&opts.dump, "dump", "", "Print the final memory as json or yaml")
	cmd.Flags().BoolVar(&opts.changes, "changes", false, "Report the cell ranges the script modified")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Verify free-list invariants after the script")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Stop at the first failing line")
	return cmd
}

func runScript(cmd *cobra.Command, cfg *rootConfig, opts *runOptions, path string) (retErr error) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if opts.dump != "" && opts.dump != "json" && opts.dump != "yaml" {
		return fmt.Errorf("invalid --dump %q: want json or yaml", opts.dump)
	}

	var src io.Reader
	if path == "-" {
		src = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		src = f
	}

	aopts := &arena.Options{Mapped: opts.mapped}
	var tracker *dirty.Tracker
	if opts.changes {
		tracker = dirty.NewTracker(1)
		aopts.Tracker = tracker
	}

	mem, err := arena.New(opts.cells, aopts)
	if err != nil {
		return fmt.Errorf("invalid --cells: %w", err)
	}

	printVerbose := func(format string, args ...any) { cfg.printVerbose(stderr, format, args...) }
	printVerbose("Memory: %d cells (mapped=%v)\n", opts.cells, opts.mapped)

	in, err := interp.New(mem, stdout, &interp.Options{
		Logger:      logger.L,
		Diagnostics: stderr,
		Encoding:    opts.encoding,
		Strict:      opts.strict,
	})
	if err != nil {
		return err
	}
	defer closeInterp(stderr, in, &retErr)

	sum, runErr := in.Run(cmd.Context(), src)
	printVerbose("Lines: %d, executed: %d, failed: %d\n", sum.Lines, sum.Executed, sum.Failed)
	if runErr != nil {
		return runErr
	}
	if sum.Failed > 0 {
		cfg.printInfo(stderr, "%d of %d lines failed\n", sum.Failed, sum.Lines)
	}

	if opts.check {
		if err := mem.CheckInvariants(); err != nil {
			return err
		}
		printVerbose("Free list invariants hold\n")
	}

	report := runReport{Summary: sum, Stats: mem.Stats()}
	if tracker != nil {
		report.Modified = tracker.Ranges()
		if opts.dump == "" {
			printChanges(stdout, report.Modified)
		}
	}

	switch opts.dump {
	case "json":
		if report.Memory, err = in.Snapshot(); err != nil {
			return err
		}
		return printJSON(stdout, report)
	case "yaml":
		if report.Memory, err = in.Snapshot(); err != nil {
			return err
		}
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}
	return nil
}

func printChanges(w io.Writer, ranges []dirty.Range) {
	if len(ranges) == 0 {
		fmt.Fprintln(w, "modified: none")
		return
	}
	fmt.Fprint(w, "modified:")
	for _, r := range ranges {
		fmt.Fprintf(w, " [%d,%d)", r.Off, r.End())
	}
	fmt.Fprintln(w)
}

// closeInterp closes in, reporting a failure to w and into *retErr unless
// an earlier error is already set.
func closeInterp(w io.Writer, in *interp.Interpreter, retErr *error) {
	if err := in.Close(); err != nil {
		printError(w, "%v\n", err)
		if *retErr == nil {
			*retErr = err
		}
	}
}
