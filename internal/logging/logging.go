// Package logging wires go.uber.org/zap for the CLI and catalog loader,
// grounded on dphaener-conduit's internal/lsp server (which builds a
// zap.Logger and falls back to zap.NewNop() on construction failure).
// The pure compiler packages (token, lexer, ast, parser, validator,
// lower) never import this package: they return errors instead of
// logging, per spec.md §7's "errors are data, not exceptions".
package logging

import "go.uber.org/zap"

// New returns a development logger under verbose, a production logger
// otherwise, falling back to a no-op logger if construction fails.
func New(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
