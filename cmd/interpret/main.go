// Command interpret runs an IPPcode23 XML program against the VM (§6.1).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ipp23/interpret/ioadapter"
	"github.com/ipp23/interpret/source"
	"github.com/ipp23/interpret/vm"
)

// interpreterVersion identifies this build against the IPPcode23 opcode set
// it executes, printed by --version.
const interpreterVersion = "ipp23-interpret 0.1.0"

func main() {
	os.Exit(run(os.Args))
}

// run wires flags to the loader and VM and returns the process exit code.
// Kept separate from main so that, apart from --version's own early exit,
// the process exits through main's single os.Exit call, mirroring the
// teacher's cmd/hey/main.go.
func run(args []string) int {
	var sourcePath, inputPath string
	exitCode := 0

	app := &cli.Command{
		Name:  "interpret",
		Usage: "Execute an IPPcode23 XML program",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "source",
				Usage:       "path to the IPPcode23 XML program; defaults to stdin",
				Destination: &sourcePath,
			},
			&cli.StringFlag{
				Name:        "input",
				Usage:       "path to the program's input; defaults to stdin",
				Destination: &inputPath,
			},
			&cli.BoolFlag{
				Name:  "version",
				Usage: "print the interpreter version and exit",
				Action: func(ctx context.Context, cmd *cli.Command, v bool) error {
					if v {
						fmt.Println(interpreterVersion)
						os.Exit(0)
					}
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			code, err := execute(sourcePath, inputPath)
			exitCode = code
			return err
		},
	}

	if err := app.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "argument error:", err)
		return 1
	}
	return exitCode
}

// execute loads sourcePath (or stdin) and runs it against inputPath (or
// stdin), returning the process exit code per §6.4.
func execute(sourcePath, inputPath string) (int, error) {
	if sourcePath == "" && inputPath == "" {
		return 1, fmt.Errorf("at least one of --source or --input must be given when the other would also read stdin")
	}

	srcFile, closeSrc, err := openOrStdin(sourcePath)
	if err != nil {
		return 1, err
	}
	defer closeSrc()

	program, err := source.Load(srcFile)
	if err != nil {
		if le, ok := err.(*source.LoadError); ok {
			fmt.Fprintln(os.Stderr, le.Error())
			return int(le.Code), nil
		}
		return 1, err
	}

	inFile, closeIn, err := openOrStdin(inputPath)
	if err != nil {
		return 1, err
	}
	defer closeIn()

	in := ioadapter.NewReader(inFile)
	out := ioadapter.NewWriter(os.Stdout, os.Stdout.Fd())
	errout := ioadapter.NewWriter(os.Stderr, os.Stderr.Fd())

	machine, err := vm.New(program, in, out, errout)
	if err != nil {
		if f, ok := err.(*vm.Fault); ok {
			fmt.Fprintln(os.Stderr, f.Error())
			return f.Code(), nil
		}
		return 1, err
	}

	code, err := machine.Run()
	if err != nil {
		if f, ok := err.(*vm.Fault); ok {
			fmt.Fprintln(os.Stderr, f.Error())
			return f.Code(), nil
		}
		return 1, err
	}
	return code, nil
}

// openOrStdin opens path, or returns stdin when path is empty. The close
// function is a no-op for stdin.
func openOrStdin(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { _ = f.Close() }, nil
}
