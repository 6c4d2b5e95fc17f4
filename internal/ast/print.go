package ast

import (
	"fmt"
	"io"
)

// Fprint writes an indented dump of the tree, one node per line.
func Fprint(w io.Writer, p *Program) {
	fmt.Fprintln(w, "Program")
	fmt.Fprintf(w, "  Function %s\n", p.Function.Name)
	for _, s := range p.Function.Body {
		printStmt(w, s, "    ")
	}
}

func printStmt(w io.Writer, s Stmt, indent string) {
	switch s := s.(type) {
	case *ReturnStmt:
		fmt.Fprintf(w, "%sReturn\n", indent)
		printExpr(w, s.Expr, indent+"  ")
	default:
		fmt.Fprintf(w, "%s%T\n", indent, s)
	}
}

func printExpr(w io.Writer, e Expr, indent string) {
	switch e := e.(type) {
	case *IntLit:
		fmt.Fprintf(w, "%sConstant %d\n", indent, e.Value)
	case *UnaryExpr:
		fmt.Fprintf(w, "%sUnary %s\n", indent, e.Op)
		printExpr(w, e.X, indent+"  ")
	case *BinaryExpr:
		fmt.Fprintf(w, "%sBinary %s\n", indent, e.Op)
		printExpr(w, e.Left, indent+"  ")
		printExpr(w, e.Right, indent+"  ")
	default:
		fmt.Fprintf(w, "%s%T\n", indent, e)
	}
}
