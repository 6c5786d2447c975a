// Command rastreador traces one target program's syscalls, optionally
// logging each entry/exit (-v) and single-stepping through a key press
// (-V), then prints a count-and-percentage summary on exit.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ajrojasfuentes/rastreador/pkg/keywait"
	"github.com/ajrojasfuentes/rastreador/pkg/launcher"
	"github.com/ajrojasfuentes/rastreador/pkg/remotemem"
	"github.com/ajrojasfuentes/rastreador/pkg/summary"
	"github.com/ajrojasfuentes/rastreador/pkg/tracer"
)

var (
	verbose     bool
	veryVerbose bool
)

var rootCmd = &cobra.Command{
	Use:                   "rastreador [-v|--verbose] [-V|--very] <prog> [args...]",
	Short:                 "Rastreador de syscalls estilo strace -c -f",
	Args:                  cobra.MinimumNArgs(1),
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
	SilenceErrors:         true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if veryVerbose {
			verbose = true
		}
		return run(args[0], args[1:])
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "registra cada syscall de entrada/salida")
	rootCmd.Flags().BoolVarP(&veryVerbose, "very", "V", false, "como -v, pero pausa tras cada línea")
	// Stop parsing rastreador's own flags at the first positional
	// argument (the target program name); everything after it, including
	// tokens that look like flags, is the target's own argv.
	rootCmd.Flags().SetInterspersed(false)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rastreador:", err)
		os.Exit(2)
	}
}

func run(prog string, progArgs []string) error {
	if err := launcher.CheckProgram(prog); err != nil {
		return err
	}
	res, err := launcher.Launch(prog, progArgs)
	if err != nil {
		// Past the pre-fork check, any Launch failure is reported as the
		// target's own exec failure (see launcher.Launch): exit 127.
		fmt.Fprintln(os.Stderr, "rastreador:", err)
		os.Exit(127)
	}
	if res.PTY != nil {
		defer res.PTY.Close()
	}

	runID := uuid.New()
	if verbose {
		fmt.Fprintf(os.Stderr, "[rastreador %s] trazando pid %d\n", runID, res.PID)
	}

	loop := tracer.NewStopLoop(tracer.SyscallGetRegs)
	loop.Verbose = verbose

	if verbose {
		mem := remotemem.New(func(addr uintptr, buf []byte) (int, error) {
			return syscallPeek(res.PID, addr, buf)
		})
		dec := &tracer.Decoder{
			Out:    os.Stderr,
			Mem:    mem,
			DirFDs: remotemem.NewDirFDCache(),
		}
		if veryVerbose {
			dec.KeyWaiter = keywait.New(os.Stderr, os.Stdin)
		}
		loop.Decoder = dec
	}

	start := time.Now()
	exitCode, err := loop.Run(res.PID)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	summary.Print(os.Stdout, loop.Counters(), elapsed)

	os.Exit(exitCode)
	return nil
}
