package main

import (
	"fmt"
	"os"
	"strconv"

	"nock/reducer-go/pkg/driver"
	"nock/reducer-go/pkg/reduce"
)

const cliToolVersion = "nock-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runSuite(args[1:])
	case "eval":
		return runEval(args[1:])
	case "suites":
		return runSuites(args[1:])
	default:
		return runSuite(args)
	}
}

// parseRunArgs accepts one positional path plus an optional
// --max-steps bound.
func parseRunArgs(args []string) (string, uint64, error) {
	var path string
	var maxSteps uint64
	for i := 0; i < len(args); {
		switch {
		case args[i] == "--max-steps":
			if i+1 >= len(args) {
				return "", 0, fmt.Errorf("--max-steps requires a value")
			}
			v, err := strconv.ParseUint(args[i+1], 10, 64)
			if err != nil {
				return "", 0, fmt.Errorf("--max-steps: %w", err)
			}
			maxSteps = v
			i += 2
		case path == "":
			path = args[i]
			i++
		default:
			return "", 0, fmt.Errorf("unexpected argument %q", args[i])
		}
	}
	if path == "" {
		return "", 0, fmt.Errorf("a suite file is required")
	}
	return path, maxSteps, nil
}

func runSuite(args []string) int {
	path, maxSteps, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		printUsage()
		return 1
	}

	suite, err := driver.LoadSuite(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		return 1
	}

	failed := 0
	for _, result := range driver.RunSuite(suite, maxSteps) {
		if result.Pass {
			fmt.Fprintf(os.Stdout, "ok   %s\n", result.Case.Name)
		} else {
			failed++
			fmt.Fprintf(os.Stdout, "FAIL %s: %s\n", result.Case.Name, result.Detail)
		}
	}
	fmt.Fprintf(os.Stdout, "%s: %d/%d cases passed\n", suite.Name, len(suite.Cases)-failed, len(suite.Cases))
	if failed > 0 {
		return 1
	}
	return 0
}

func runEval(args []string) int {
	path, maxSteps, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		printUsage()
		return 1
	}

	subject, formula, err := driver.LoadPair(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		return 1
	}

	interp := reduce.New()
	if maxSteps != 0 {
		interp = reduce.NewBounded(maxSteps)
	}
	product, err := interp.Reduce(subject, formula)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nock:", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, product)
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  nock run <suite.yml> [--max-steps n]")
	fmt.Fprintln(os.Stderr, "  nock eval <pair.yml> [--max-steps n]")
	fmt.Fprintln(os.Stderr, "  nock suites fetch <suite.yml>")
	fmt.Fprintln(os.Stderr, "  nock --version")
}
