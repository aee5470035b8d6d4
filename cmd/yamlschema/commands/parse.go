package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	yamlschema "github.com/djabraham/yamlschema"
	"github.com/djabraham/yamlschema/ast"
	"github.com/djabraham/yamlschema/parser"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Format string
	Tree   bool
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")
	fs.BoolVar(&flags.Tree, "tree", false, "print the node tree with byte ranges")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: yamlschema parse [flags] <file|->\n\n")
		Writef(fs.Output(), "Parse a YAML or JSON document and display its node structure.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  yamlschema parse pets.yaml\n")
		Writef(fs.Output(), "  yamlschema parse -tree pets.yaml\n")
		Writef(fs.Output(), "  cat pets.json | yamlschema parse -format json -\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	docPath := fs.Arg(0)

	var parsed *parser.ParseResult
	var err error
	if docPath == StdinFilePath {
		parsed, err = parser.ParseWithOptions(parser.WithReader(os.Stdin))
	} else {
		parsed, err = parser.ParseWithOptions(parser.WithFilePath(docPath))
	}
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	if flags.Format == FormatJSON {
		report := map[string]any{
			"document": docPath,
			"format":   string(parsed.SourceFormat),
			"size":     parsed.SourceSize,
		}
		if parsed.Root != nil {
			report["value"] = parsed.Root.Value()
		}
		if len(parsed.Errors) > 0 {
			errs := make([]issueReport, 0, len(parsed.Errors))
			for _, issue := range parsed.Errors {
				errs = append(errs, toIssueReport(issue))
			}
			report["errors"] = errs
		}
		if err := OutputStructured(os.Stdout, report); err != nil {
			return err
		}
		if len(parsed.Errors) > 0 {
			os.Exit(1)
		}
		return nil
	}

	Writef(os.Stdout, "yamlschema v%s\n", yamlschema.Version())
	Writef(os.Stdout, "Document: %s (%s)\n", docPath, parsed.SourceFormat)
	Writef(os.Stdout, "Source Size: %d bytes\n", parsed.SourceSize)
	Writef(os.Stdout, "Load Time: %v\n\n", parsed.LoadTime)

	if len(parsed.Errors) > 0 {
		Writef(os.Stdout, "Errors (%d):\n", len(parsed.Errors))
		for _, issue := range parsed.Errors {
			RenderIssue(os.Stdout, issue)
		}
		Writef(os.Stdout, "\n")
		os.Exit(1)
	}

	if parsed.Root == nil {
		Writef(os.Stdout, "Document is empty\n")
		return nil
	}

	if flags.Tree {
		printTree(parsed.Root, 0)
		return nil
	}
	return OutputStructured(os.Stdout, parsed.Root.Value())
}

func printTree(node *ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	label := node.Kind.String()
	switch node.Kind {
	case ast.KindString:
		Writef(os.Stdout, "%s%s [%d:%d) %q\n", indent, label, node.Start, node.End, node.Str)
	case ast.KindNumber:
		Writef(os.Stdout, "%s%s [%d:%d) %v\n", indent, label, node.Start, node.End, node.Num)
	case ast.KindBoolean:
		Writef(os.Stdout, "%s%s [%d:%d) %v\n", indent, label, node.Start, node.End, node.Bool)
	case ast.KindProperty:
		name := ""
		if node.Key != nil {
			name = node.Key.Str
		}
		Writef(os.Stdout, "%s%s [%d:%d) %q\n", indent, label, node.Start, node.End, name)
	default:
		Writef(os.Stdout, "%s%s [%d:%d)\n", indent, label, node.Start, node.End)
	}
	for _, child := range node.Children() {
		if node.Kind == ast.KindProperty && child == node.Key {
			continue
		}
		printTree(child, depth+1)
	}
}
