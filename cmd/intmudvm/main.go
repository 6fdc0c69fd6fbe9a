package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/wudi/intmud/config"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
	"github.com/wudi/intmud/vm"
)

func main() {
	app := &cli.Command{
		Name:  "intmudvm",
		Usage: "A standalone host for the narrow-integer, MUD-scripting stack VM",
		Commands: []*cli.Command{
			runCommand,
			replCommand,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "decode a unit container and invoke a function in it",
	ArgsUsage: "<unit-file> <function> [args...]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to a YAML limits/output config"},
		&cli.BoolFlag{Name: "report", Usage: "print the profiling report after execution"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		args := cmd.Args().Slice()
		if len(args) < 2 {
			return fmt.Errorf("usage: intmudvm run <unit-file> <function> [args...]")
		}
		cfg := config.Default()
		if p := cmd.String("config"); p != "" {
			loaded, err := config.Load(p)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		root, err := unit.DecodeUnit(f)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}
		table := unit.NewTable()
		table.Register(root)

		machine := vm.NewVMWithConfig(root, table, cfg)
		machine.SetWrite(func(s string) { fmt.Print(s) })
		stdin := bufio.NewReader(os.Stdin)
		machine.SetRead(func() string {
			line, _ := stdin.ReadString('\n')
			return strings.TrimRight(line, "\r\n")
		})

		callArgs := make([]*values.Value, 0, len(args)-2)
		for _, a := range args[2:] {
			callArgs = append(callArgs, values.String(a))
		}

		result, err := machine.Execute(args[1], callArgs)
		if err != nil {
			return err
		}
		fmt.Println(result.AsString())

		if cmd.Bool("report") {
			fmt.Fprintln(os.Stderr, machine.Report())
		}
		return nil
	},
}

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "read-eval-print loop against a decoded unit container",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "path to a YAML limits/output config"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		args := cmd.Args().Slice()
		if len(args) < 1 {
			return fmt.Errorf("usage: intmudvm repl <unit-file>")
		}
		cfg := config.Default()
		if p := cmd.String("config"); p != "" {
			loaded, err := config.Load(p)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		root, err := unit.DecodeUnit(f)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}
		table := unit.NewTable()
		table.Register(root)

		machine := vm.NewVMWithConfig(root, table, cfg)
		machine.SetWrite(func(s string) { fmt.Print(s) })

		session := uuid.New().String()
		return runREPL(machine, session)
	},
}

// runREPL drives an interactive prompt. isatty gates whether it shows the
// fancier readline prompt (with history/line-editing) or falls back to a
// plain scanner for piped, non-interactive input — the same distinction
// the teacher's shell makes around reading from os.Stdin.
func runREPL(machine *vm.VirtualMachine, session string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return runPipedREPL(machine)
	}

	rl, err := readline.New(fmt.Sprintf("intmud[%s] > ", session[:8]))
	if err != nil {
		return runPipedREPL(machine)
	}
	defer rl.Close()

	fmt.Printf("intmud REPL — session %s, type 'sair' or 'exit' to quit\n", session)
	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "sair" || line == "exit" || line == "quit" {
			return nil
		}
		evalREPLLine(machine, line)
	}
}

func runPipedREPL(machine *vm.VirtualMachine) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "sair" || line == "exit" || line == "quit" {
			continue
		}
		evalREPLLine(machine, line)
	}
	return scanner.Err()
}

// evalREPLLine treats the line as `function arg1 arg2 ...`, space-separated
// — the REPL is a thin demo harness (out of scope: a full expression
// parser), matching the one function-call-at-a-time shape the decoded
// unit's own bytecode already assumes.
func evalREPLLine(machine *vm.VirtualMachine, line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	callArgs := make([]*values.Value, 0, len(parts)-1)
	for _, a := range parts[1:] {
		callArgs = append(callArgs, values.String(a))
	}
	result, err := machine.Execute(parts[0], callArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Println(result.AsString())
}
