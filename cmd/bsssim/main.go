// Command bsssim runs the BSS causal-order broadcast simulator over a
// script file and writes the resulting per-process trace.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/bsscast/bsssim/pkg/bss/core"
	"github.com/bsscast/bsssim/pkg/bss/definition"
	"github.com/bsscast/bsssim/pkg/bss/script"
)

var (
	app = kingpin.New("bsssim", "BSS causal-order broadcast protocol simulator.")

	scriptPath  = app.Arg("script", "Path to the process script file.").Required().String()
	debug       = app.Flag("debug", "Enable debug-level logging.").Bool()
	pollLimit   = app.Flag("poll-limit", "Override the recv_B poll limit before livelock is declared (default 2*N).").Int()
	output      = app.Flag("output", "Trace output file path.").Default("output.txt").String()
	metricsAddr = app.Flag("metrics-addr", "If set, serve Prometheus metrics on this address (e.g. :9090).").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	os.Exit(run())
}

func run() int {
	logger := definition.NewDefaultLogger()
	logger.ToggleDebug(*debug)

	metrics := definition.NewMetrics()
	if *metricsAddr != "" {
		server := &http.Server{Addr: *metricsAddr, Handler: metrics.Handler()}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("metrics server stopped: %v", err)
			}
		}()
		defer server.Close()
	}

	f, err := os.Open(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open script %q: %v\n", *scriptPath, err)
		return 1
	}
	defer f.Close()

	scripts, err := script.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid script: %v\n", err)
		return 1
	}

	sim := &core.Simulator{
		Logger:      logger,
		Metrics:     metrics,
		PollLimit:   *pollLimit,
		PollBackoff: core.DefaultPollBackoff,
	}

	trace, simErr := sim.Run(scripts)
	if simErr != nil {
		// Mirrors the source's abrupt exit on livelock: no trace is
		// flushed, since the simulation never reached a consistent
		// terminal state.
		if errors.Is(simErr, core.ErrLivelockDetected) {
			msg := core.ErrLivelockDetected.Error()
			if color.NoColor {
				fmt.Println(msg)
			} else {
				color.Red(msg)
			}
			return 1
		}
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", simErr)
		return 1
	}

	if err := writeTrace(*output, trace); err != nil {
		fmt.Fprintf(os.Stderr, "failed writing trace: %v\n", err)
		return 1
	}

	return 0
}

func writeTrace(path string, trace *core.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return script.WriteTrace(f, trace)
}
