// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ComedicChimera/olive"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"bread/internal/compiler"
	"bread/internal/config"
	"bread/internal/errors"
)

const version = "0.1.0"

var logLevels = map[string]int{
	"silent": -1,
	"error":  0,
	"info":   1,
	"debug":  2,
}

func main() {
	cli := olive.NewCLI("bread", "bread compiles Bread programs to SSA IR", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "info", "debug"})
	logLvlArg.SetDefaultValue("silent")
	cli.AddStringArg("config", "c", "path to a bread.toml, found from the source directory when omitted", false)

	buildCmd := cli.AddSubcommand("build", "lower a file and print its IR", true)
	buildCmd.AddPrimaryArg("file", "the Bread source file", true)
	buildCmd.AddSelectorArg("emit", "e", "the output format", false, []string{config.FormatIR, config.FormatLLVM})

	runCmd := cli.AddSubcommand("run", "lower a file and interpret its entry function", true)
	runCmd.AddPrimaryArg("file", "the Bread source file", true)

	checkCmd := cli.AddSubcommand("check", "report errors and warnings without output", true)
	checkCmd.AddPrimaryArg("file", "the Bread source file", true)

	cli.AddSubcommand("init", "write a default bread.toml to the working directory", false)
	cli.AddSubcommand("version", "print the bread version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		color.Red("usage error: %s", err)
		os.Exit(2)
	}

	commonlog.Configure(logLevels[result.Arguments["loglevel"].(string)], nil)
	configPath, _ := result.Arguments["config"].(string)

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		os.Exit(execBuild(subResult, configPath))
	case "run":
		os.Exit(execRun(subResult, configPath))
	case "check":
		os.Exit(execCheck(subResult, configPath))
	case "init":
		os.Exit(execInit())
	case "version":
		fmt.Println("bread", version)
	}
}

func execBuild(result *olive.ArgParseResult, configPath string) int {
	c, res, ok := compile(result, configPath)
	if !ok {
		return 1
	}
	if emit, ok := result.Arguments["emit"].(string); ok {
		c.Config().Output.Format = emit
	}

	text, err := c.Emit(res)
	if err != nil {
		color.Red("emit failed: %s", err)
		return 1
	}
	fmt.Print(text)
	color.Green("Successfully compiled %s in %s", res.Filename, formatDuration(res.Elapsed))
	return 0
}

func execRun(result *olive.ArgParseResult, configPath string) int {
	c, res, ok := compile(result, configPath)
	if !ok {
		return 1
	}

	start := time.Now()
	value, err := c.Run(res)
	if err != nil {
		var ce errors.CompilerError
		if stderrors.As(err, &ce) {
			printDiagnostics(res, []errors.CompilerError{ce})
		} else {
			fmt.Fprintln(os.Stderr, color.RedString("error: %s", err))
		}
		color.Red("Execution failed after %s", formatDuration(time.Since(start)))
		return 1
	}
	fmt.Println(value)
	return 0
}

func execCheck(result *olive.ArgParseResult, configPath string) int {
	_, res, ok := compile(result, configPath)
	if !ok {
		return 1
	}
	color.Green("No errors in %s (%d warnings)", res.Filename, len(res.Warnings))
	return 0
}

func execInit() int {
	if _, err := os.Stat(config.FileName); err == nil {
		color.Red("%s already exists", config.FileName)
		return 1
	}
	f, err := os.Create(config.FileName)
	if err != nil {
		color.Red("failed to create %s: %s", config.FileName, err)
		return 1
	}
	defer f.Close()

	if err := config.Default().Write(f); err != nil {
		color.Red("failed to write %s: %s", config.FileName, err)
		return 1
	}
	color.Green("Wrote %s", config.FileName)
	return 0
}

// compile loads the config, compiles the primary argument and prints every
// diagnostic. ok is false when compilation failed.
func compile(result *olive.ArgParseResult, configPath string) (*compiler.Compiler, *compiler.Result, bool) {
	path, _ := result.PrimaryArg()

	cfg, err := loadConfig(configPath, filepath.Dir(path))
	if err != nil {
		color.Red("config error: %s", err)
		return nil, nil, false
	}
	if !cfg.Output.Color {
		color.NoColor = true
	}

	c := compiler.New(cfg)
	res, err := c.CompileFile(path)
	if res == nil {
		color.Red("%s", err)
		return nil, nil, false
	}

	report(res, err)
	if err != nil {
		color.Red("Compilation failed after %s", formatDuration(res.Elapsed))
		return nil, nil, false
	}
	return c, res, true
}

func loadConfig(path, dir string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadNearest(dir)
}

// report prints the compiler diagnostics of a run with source context
func report(res *compiler.Result, err error) {
	diags, other := compiler.Diagnostics(res, err)
	if other != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %s", other))
		return
	}
	printDiagnostics(res, diags)
}

func printDiagnostics(res *compiler.Result, diags []errors.CompilerError) {
	fmt.Fprint(os.Stderr, errors.NewErrorReporter(res.Filename, res.Source).FormatAll(diags))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
