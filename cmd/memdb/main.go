// Package main is the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"memdb/internal/ast"
	"memdb/internal/config"
	"memdb/internal/executor"
	"memdb/internal/model"
	"memdb/internal/parser"
	"memdb/internal/telemetry"
	"memdb/internal/value"
)

type runFlags struct {
	configPath string
	verbose    bool

	autoDump    bool
	autoSave    bool
	dumpPath    string
	historyPath string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "memdb",
		Short: "A small in-memory relational store driven by a SQL-like script language",
	}

	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Feed a script file's statements to the engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScript(args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to a memdb TOML config file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log one structured record per executed statement")
	cmd.Flags().BoolVar(&flags.autoDump, "auto-dump", false, "DUMP_TO the configured/overridden path once the script finishes")
	cmd.Flags().BoolVar(&flags.autoSave, "auto-save", false, "SAVE_AS the configured/overridden path once the script finishes")
	cmd.Flags().StringVar(&flags.dumpPath, "dump-path", "", "Override the config file's [defaults].dump_path for --auto-dump")
	cmd.Flags().StringVar(&flags.historyPath, "history-path", "", "Override the config file's [defaults].history_path for --auto-save")
	return cmd
}

func runScript(path string, flags *runFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	dumpPath := flags.dumpPath
	if dumpPath == "" {
		dumpPath = cfg.Defaults.DumpPath
	}
	historyPath := flags.historyPath
	if historyPath == "" {
		historyPath = cfg.Defaults.HistoryPath
	}

	logger := telemetry.Discard()
	if flags.verbose {
		logger = telemetry.New(os.Stdout, slogLevel())
	}

	ctx := newFileContext()
	db := model.NewDatabase()
	exec := executor.New(db, ctx, logger)

	if err := runFile(exec, ctx, path); err != nil {
		return err
	}

	// These run after the whole script (including any READ_FROM it pulls
	// in) so that --auto-dump/--auto-save snapshot the final state of the
	// session, not just whatever the script itself happened to DUMP_TO or
	// SAVE_AS explicitly.
	if flags.autoDump {
		res, err := exec.Execute(&ast.Command{Kind: ast.CmdDumpTo, Path: dumpPath})
		if err != nil {
			return fmt.Errorf("memdb: auto-dump: %w", err)
		}
		printResult(res)
	}
	if flags.autoSave {
		res, err := exec.Execute(&ast.Command{Kind: ast.CmdSaveAs, Path: historyPath})
		if err != nil {
			return fmt.Errorf("memdb: auto-save: %w", err)
		}
		printResult(res)
	}
	return nil
}

// runFile reads path, splits it into ';'-terminated statements, and feeds
// each to the parser/executor loop in turn. A DeferredScript result (from
// READ_FROM) is handled here, by recursing into runFile for the named
// file — this recursion deliberately lives in the CLI, never inside the
// executor, per the core's no-self-recursion rule for READ_FROM.
func runFile(exec *executor.Executor, ctx *fileContext, path string) error {
	text, err := ctx.ReadText(path)
	if err != nil {
		return fmt.Errorf("memdb: reading %q: %w", path, err)
	}

	for _, stmt := range splitStatements(text) {
		cmd, err := parser.Parse(stmt)
		if err != nil {
			return fmt.Errorf("memdb: parse error in %q: %w", path, err)
		}

		res, err := exec.Execute(cmd)
		if err != nil {
			return fmt.Errorf("memdb: %w", err)
		}
		ctx.RecordStatement(stmt + ";")
		printResult(res)

		if res.Kind == executor.DeferredScript {
			if err := runFile(exec, ctx, res.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitStatements breaks script text into trimmed, semicolon-delimited
// statements, dropping any trailing empty fragment (spec.md §4.2/§6:
// "one statement per logical entry, terminated by ';'... newlines inside
// a statement are whitespace").
func splitStatements(text string) []string {
	parts := strings.Split(text, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printResult(res *executor.Result) {
	switch res.Kind {
	case executor.Ack:
		fmt.Println(res.Message)
	case executor.Rows:
		printRows(res.Columns, res.Values)
	case executor.DeferredScript:
		fmt.Printf("reading %s\n", res.Path)
	}
}

func printRows(columns []string, rows [][]value.Value) {
	fmt.Println(strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}
