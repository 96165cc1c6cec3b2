package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/dfrs-lang/dfrsc/internal/catalog"
	"github.com/dfrs-lang/dfrsc/internal/config"
	"github.com/dfrs-lang/dfrsc/internal/diagnostics"
	"github.com/dfrs-lang/dfrsc/internal/lexer"
	"github.com/dfrs-lang/dfrsc/internal/logging"
	"github.com/dfrs-lang/dfrsc/internal/lower"
	"github.com/dfrs-lang/dfrsc/internal/parser"
	"github.com/dfrs-lang/dfrsc/internal/transport"
	"github.com/dfrs-lang/dfrsc/internal/validator"
)

var (
	compileOutput       string
	compileCatalogPath  string
	compileDumpTokens   bool
	compileDumpAST      bool
	compileDumpCompile  bool
	compilePretty       bool
	compileSend         bool
	compileNoColor      bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <path>",
	Short: "Compile a .dfrs file or a directory of .dfrs files",
	Long: `Compile lexes, parses, validates and lowers one DFRS source file, or
every *.dfrs file in a directory (sequential, directory-iteration order),
into codeline JSON.

Examples:
  dfrsc compile script.dfrs
  dfrsc compile ./scripts -o ./out
  dfrsc compile script.dfrs --pretty --dump-ast`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output directory for emitted codeline JSON (default: alongside source)")
	compileCmd.Flags().StringVar(&compileCatalogPath, "catalog", "actiondump.json", "path to the action-dump catalog JSON")
	compileCmd.Flags().BoolVar(&compileDumpTokens, "dump-tokens", false, "dump the token stream instead of compiling")
	compileCmd.Flags().BoolVar(&compileDumpAST, "dump-ast", false, "dump the parsed AST instead of compiling")
	compileCmd.Flags().BoolVar(&compileDumpCompile, "dump-compile", false, "print the emitted codeline JSON to stdout as well as writing it")
	compileCmd.Flags().BoolVar(&compilePretty, "pretty", false, "pretty-print emitted JSON for inspection (the wire form stays compact)")
	compileCmd.Flags().BoolVar(&compileSend, "send", false, "also transmit compiled codelines over the configured [transport]")
	compileCmd.Flags().BoolVar(&compileNoColor, "no-color", false, "disable ANSI color in diagnostics")
}

func runCompile(cmd *cobra.Command, args []string) error {
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	logger := logging.New(verbose)
	defer logger.Sync() //nolint:errcheck

	cat, err := catalog.LoadWithLogger(compileCatalogPath, logger)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(target)
		if err != nil {
			return fmt.Errorf("reading directory %s: %w", target, err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".dfrs") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join(target, n))
		}
	} else {
		files = []string{target}
	}

	cfgDir := filepath.Dir(target)
	if info.IsDir() {
		cfgDir = target
	}
	cfg, err := config.Load(cfgDir)
	if err != nil {
		return fmt.Errorf("loading %s: %w", config.FileName, err)
	}
	if cfg.Debug.Tokens {
		compileDumpTokens = true
	}
	if cfg.Debug.Nodes {
		compileDumpAST = true
	}
	if cfg.Debug.Compile {
		compileDumpCompile = true
	}

	var sender transport.Sender
	if compileSend {
		ctx, cancel := context.WithTimeout(cmd.Context(), writeTimeout)
		defer cancel()
		s, err := transport.Dial(ctx, cfg.Transport.Host, cfg.Transport.Port)
		if err != nil {
			return fmt.Errorf("connecting to transport: %w", err)
		}
		defer s.Close()
		sender = s
	}

	failed := false
	for _, f := range files {
		if err := compileOne(cmd.Context(), f, cat, sender, logger); err != nil {
			failed = true
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if failed {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func compileOne(ctx context.Context, path string, cat *catalog.Catalog, sender transport.Sender, logger *zap.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(src)

	if compileDumpTokens {
		toks, tokErr := lexer.Tokenize(source)
		if tokErr != nil {
			printDiagnostic(tokErr, source, path)
			return fmt.Errorf("%s: lexing failed", path)
		}
		for _, tok := range toks {
			fmt.Printf("%-12s %-20q %s\n", tok.Kind, tok.Literal, tok.Start)
		}
		return nil
	}

	file, err := parser.Parse(source)
	if err != nil {
		printDiagnostic(err, source, path)
		return fmt.Errorf("%s: parsing failed", path)
	}

	if compileDumpAST {
		dumpFile(file, 0)
		return nil
	}

	if err := validator.Validate(file, cat); err != nil {
		printDiagnostic(err, source, path)
		return fmt.Errorf("%s: validation failed", path)
	}

	lines, err := lower.File(file)
	if err != nil {
		return fmt.Errorf("%s: lowering failed: %w", path, err)
	}

	for _, line := range lines {
		code := line.Code
		if compilePretty {
			code = string(pretty.Pretty([]byte(code)))
		}
		if compileDumpCompile {
			fmt.Println(code)
		}
		if err := writeCodeline(path, line.Name, code); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if sender != nil {
		if err := sender.Send(ctx, lines); err != nil {
			return fmt.Errorf("%s: sending: %w", path, err)
		}
	}

	logger.Debug("compiled file", zap.String("path", path), zap.Int("codelines", len(lines)))
	if verbose {
		fmt.Fprintf(os.Stderr, "Compiled %s (%d codelines)\n", path, len(lines))
	}
	return nil
}

func writeCodeline(sourcePath, name, code string) error {
	dir := compileOutput
	if dir == "" {
		dir = filepath.Dir(sourcePath)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	slug := strings.NewReplacer(" ", "_", "/", "_").Replace(name)
	out := filepath.Join(dir, fmt.Sprintf("%s.%s.json", base, slug))
	return os.WriteFile(out, []byte(code), 0o644)
}

func printDiagnostic(err error, source, path string) {
	d := diagnostics.FromStageError(err, source, path)
	fmt.Fprintln(os.Stderr, d.Format(!compileNoColor))
}
