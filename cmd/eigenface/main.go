// SPDX-License-Identifier: MIT

// Command eigenface trains an eigenface database from PPM/PGM images,
// recognizes new images against it and exports its eigenfaces as images.
//
// Usage:
//
//	eigenface train     -db NAME [-config FILE] IMAGE...
//	eigenface recognize -db NAME [-config FILE] [-threshold T] IMAGE...
//	eigenface export    -db NAME [-config FILE] -width W -height H -out DIR
//
// Exit status is 0 on success, 1 on failure and 2 on a usage error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"train", "train a database from images", runTrain},
	{"recognize", "match images against a database", runRecognize},
	{"export", "write the mean face and eigenfaces as PPM images", runExport},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		err := c.run(ctx, args[1:], stdout, stderr)
		switch {
		case err == nil:
			return exitOK
		case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
			return exitUsage
		default:
			fmt.Fprintf(stderr, "eigenface %s: %v\n", c.name, err)
			return exitError
		}
	}
	fmt.Fprintf(stderr, "eigenface: unknown command %q\n", args[0])
	usage(stderr)

	return exitUsage
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: eigenface <command> [flags] [images]")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
}

// parseFlags parses args into fs and reports problems as errUsage.
func parseFlags(fs *flag.FlagSet, args []string, stderr io.Writer) error {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}

	return nil
}

func usageErr(fs *flag.FlagSet, stderr io.Writer, format string, args ...any) error {
	fmt.Fprintf(stderr, "eigenface %s: %s\n", fs.Name(), fmt.Sprintf(format, args...))
	fs.Usage()

	return errUsage
}
