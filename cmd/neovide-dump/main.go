// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// neovide-dump inspects captured redraw traces. The default mode
// lists every record with its offset, method, and decoded event
// names; the other modes reshape that stream for specific questions:
//
//	--stats   what does this session consist of?
//	--verify  is the file intact?
//	--raw     what exactly did the editor send? (CBOR diagnostic)
//	--json    machine-readable record stream for scripts
//
// Records whose payload no longer decodes are reported inline and do
// not stop the listing; inspecting broken traffic is what the tool is
// for.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/darcyparker/neovide/lib/cli"
	"github.com/darcyparker/neovide/lib/version"
	"github.com/darcyparker/neovide/redraw"
	"github.com/darcyparker/neovide/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		jsonFlag   bool
		statsFlag  bool
		verifyFlag bool
		rawFlag    bool
	)

	flagSet := pflag.NewFlagSet("neovide-dump", pflag.ContinueOnError)
	flagSet.BoolVar(&jsonFlag, "json", false, "write one JSON object per record")
	flagSet.BoolVar(&statsFlag, "stats", false, "aggregate statistics instead of a listing")
	flagSet.BoolVar(&verifyFlag, "verify", false, "verify the stream digest and exit")
	flagSet.BoolVar(&rawFlag, "raw", false, "print payloads in CBOR diagnostic notation")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// other flags.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("neovide-dump " + version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		return cli.Usagef("expected exactly one trace file, got %d arguments", len(args))
	}
	modes := 0
	for _, enabled := range []bool{jsonFlag, statsFlag, verifyFlag, rawFlag} {
		if enabled {
			modes++
		}
	}
	if modes > 1 {
		return cli.Usagef("--json, --stats, --verify, and --raw are mutually exclusive")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening trace: %w", err)
	}
	defer file.Close()

	reader, err := trace.NewReader(file)
	if err != nil {
		return err
	}

	// Decoder warnings (unparsed event names, unknown methods) go to
	// stderr; the listing itself owns stdout.
	decoder := redraw.NewDecoder(cli.NewLogger(slog.LevelWarn))
	out := os.Stdout

	switch {
	case verifyFlag:
		return verifyTrace(out, reader)
	case statsFlag:
		return dumpStats(out, reader, decoder)
	case jsonFlag:
		return dumpJSON(out, reader, decoder)
	case rawFlag:
		printHeader(out, args[0], reader)
		return dumpRaw(out, reader)
	default:
		printHeader(out, args[0], reader)
		return dumpListing(out, reader, decoder)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `neovide-dump — inspect a captured redraw trace.

Usage:
  neovide-dump [flags] TRACE

Examples:
  # List every record with decoded event names
  neovide-dump session.nvtrace

  # Aggregate event counts for the whole session
  neovide-dump --stats session.nvtrace

  # Check the file for corruption or truncation
  neovide-dump --verify session.nvtrace

  # See the exact bytes the editor sent, as CBOR diagnostic notation
  neovide-dump --raw session.nvtrace

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
