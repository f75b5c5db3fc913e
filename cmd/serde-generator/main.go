// Package main provides the CLI entrypoint for serde-generator.
//
// serde-generator reads Go packages, finds types marked with //serde:generate
// (or //serde:serialize, //serde:deserialize) and writes their serialization
// code next to them, one <pkg>_serde.go file per package.
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	c := &cli{stdout: stdout, stderr: stderr}

	switch args[0] {
	case "gen", "generate":
		return c.genCmd(args[1:])
	case "check":
		return c.checkCmd(args[1:])
	case "plan":
		return c.planCmd(args[1:])
	case "init":
		return c.initCmd(args[1:])
	case "version":
		fmt.Fprintf(stdout, "serde-generator version %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)

		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: serde-generator <command> [options] [packages]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  gen      Generate serialization code for annotated types\n")
	fmt.Fprintf(w, "  check    Report diagnostics and stale generated files\n")
	fmt.Fprintf(w, "  plan     Print the resolved generation plan\n")
	fmt.Fprintf(w, "  init     Write a default serdegen.yaml\n")
	fmt.Fprintf(w, "  version  Show version information\n")
	fmt.Fprintf(w, "\nRun 'serde-generator <command> -h' for help on a specific command.\n")
}
