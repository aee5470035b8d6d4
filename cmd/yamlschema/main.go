package main

import (
	"fmt"
	"os"

	yamlschema "github.com/djabraham/yamlschema"
	"github.com/djabraham/yamlschema/cmd/yamlschema/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("yamlschema v%s\n", yamlschema.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := commands.HandleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

var knownCommands = []string{"validate", "parse", "version", "help"}

// suggestCommand returns the known command closest to the input, or empty
// when nothing is within edit distance 2.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`yamlschema - JSON Schema validation for YAML and JSON documents

Usage:
  yamlschema <command> [options]

Commands:
  validate    Validate a document against a JSON schema
  parse       Parse and display a document's node structure
  version     Show version information
  help        Show this help message

Examples:
  yamlschema validate -schema pet.schema.json pets.yaml
  yamlschema validate -schema pet.schema.yaml -format json pets.json
  yamlschema parse -tree pets.yaml
  cat pets.yaml | yamlschema validate -schema pet.schema.json -q -

Run 'yamlschema <command> --help' for more information on a command.`)
}
