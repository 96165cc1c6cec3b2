package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dfrs-lang/dfrsc/internal/ast"
)

// writeTimeout bounds how long --send waits to dial the transport
// connection before giving up.
const writeTimeout = 10 * time.Second

// dumpFile prints a minimal indented tree for --dump-ast, in the style
// of CWBudde-go-dws's parse command's dumpASTNode.
func dumpFile(file *ast.FileNode, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Printf("%sFile (%d events, %d functions)\n", pad, len(file.Events), len(file.Functions))
	for _, ev := range file.Events {
		fmt.Printf("%s  Event %s (cancelled=%v)\n", pad, ev.Event, ev.Cancelled)
		dumpExprs(ev.Expressions, indent+2)
	}
	for _, fn := range file.Functions {
		fmt.Printf("%s  Function %s (%d params)\n", pad, fn.Name, len(fn.Params))
		dumpExprs(fn.Expressions, indent+2)
	}
}

func dumpExprs(exprs []ast.ExpressionNode, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, e := range exprs {
		switch {
		case e.Action != nil:
			fmt.Printf("%sAction %s:%s (%d args)\n", pad, e.Action.Selector.Code(), e.Action.Name, len(e.Action.Args))
		case e.Conditional != nil:
			fmt.Printf("%sConditional %s:%s (inverted=%v)\n", pad, e.Conditional.Selector.Code(), e.Conditional.Name, e.Conditional.Inverted)
			dumpExprs(e.Conditional.Expressions, indent+1)
			if e.Conditional.ElseExpressions != nil {
				fmt.Printf("%s  Else\n", pad)
				dumpExprs(e.Conditional.ElseExpressions, indent+1)
			}
		case e.Call != nil:
			fmt.Printf("%sCall %s (%d args)\n", pad, e.Call.Name, len(e.Call.Args))
		case e.Repeat != nil:
			fmt.Printf("%sRepeat %s\n", pad, e.Repeat.Name)
			dumpExprs(e.Repeat.Expressions, indent+1)
		case e.Variable != nil:
			fmt.Printf("%sVariable %s = %s (%s)\n", pad, e.Variable.DFRSName, e.Variable.DFName, e.Variable.VarType)
		}
	}
}
