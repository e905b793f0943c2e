package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickenator/vyn/internal/codegen"
	"github.com/rickenator/vyn/internal/lexer"
	"github.com/rickenator/vyn/internal/semantic"
	"github.com/rickenator/vyn/pkg/parser"
	"github.com/rickenator/vyn/pkg/version"
)

var (
	outputFile string
	tolerant   bool
	emitIR     bool
	dumpTokens bool
	testMode   bool
)

func main() {
	info := version.Detect()

	rootCmd := &cobra.Command{
		Use:   "vync",
		Short: "vync: the Vyn compiler front end",
		Long: `vync lexes, parses, and lowers Vyn source to LLVM IR.
It reads a file path or, when no path (or "-") is given, standard input.`,
		Version: info.String(),
	}

	buildCmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Lex, parse, analyze, and lower a Vyn source file to LLVM IR",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file for the emitted IR (default: stdout)")
	buildCmd.Flags().BoolVar(&tolerant, "tolerant", false, "collect parse errors and resynchronize instead of stopping at the first one")
	buildCmd.Flags().BoolVarP(&emitIR, "emit-ir", "S", true, "emit textual LLVM IR (.ll); the only output form this generator produces")
	buildCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream to stderr before parsing")
	buildCmd.Flags().BoolVar(&testMode, "test", false, "report self-check mode instead of building; does not invoke `go test`")

	rootCmd.AddCommand(buildCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	if testMode {
		fmt.Fprintln(cmd.OutOrStdout(), "vync build --test: library packages carry their own _test.go suites; this flag does not invoke a test binary")
		return nil
	}

	file, input, err := readInput(args)
	if err != nil {
		return err
	}

	if dumpTokens {
		if err := printTokens(cmd.ErrOrStderr(), file, input); err != nil {
			return err
		}
	}

	module, err := parser.Parse(file, input, &parser.Options{Tolerant: tolerant})
	if err != nil {
		parserErr, ok := err.(*parser.ParserError)
		if !ok {
			return fmt.Errorf("parse error: %w", err)
		}
		for _, e := range parserErr.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", e.Location, e.Message)
		}
		if !tolerant || module == nil {
			return fmt.Errorf("parsing found %d error(s)", len(parserErr.Errors))
		}
		// Tolerant mode recovered a partial module; keep going so codegen can
		// still be attempted against whatever did parse.
	}

	analyzer := semantic.NewAnalyzer(file)
	analyzer.Analyze(module)
	for _, d := range analyzer.Diagnostics.Items() {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if analyzer.Diagnostics.HasErrors() && !tolerant {
		return fmt.Errorf("semantic analysis found %d error(s)", analyzer.Diagnostics.Len())
	}

	gen := codegen.New(file, moduleNameFor(file))
	llvmModule := gen.Generate(module)
	for _, d := range gen.Diagnostics.Items() {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if gen.Diagnostics.HasErrors() && !tolerant {
		return fmt.Errorf("code generation found %d error(s)", gen.Diagnostics.Len())
	}

	return writeOutput(llvmModule.String())
}

func printTokens(w io.Writer, file, input string) error {
	lex := lexer.New(file, input)
	tokens, err := lex.Tokenize()
	if err != nil {
		return fmt.Errorf("lex error: %w", err)
	}
	for _, tok := range tokens {
		fmt.Fprintln(w, tok.String())
	}
	return nil
}

func readInput(args []string) (file, input string, err error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return "<stdin>", string(content), nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("cannot open file: %w", err)
	}
	return args[0], string(content), nil
}

func writeOutput(ir string) error {
	if outputFile == "" {
		_, err := fmt.Println(ir)
		return err
	}
	return os.WriteFile(outputFile, []byte(ir+"\n"), 0o644)
}

func moduleNameFor(file string) string {
	if file == "<stdin>" || file == "" {
		return "vyn_module"
	}
	return file
}
