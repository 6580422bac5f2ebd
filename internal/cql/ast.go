package cql

import (
	"strconv"
	"strings"
)

// Node is the interface for all AST nodes.
type Node interface {
	node()
	String() string
}

// FilterNode is a named filter such as "piece", "mate" or "count".
type FilterNode struct {
	Name string
	Args []Node
}

func (f *FilterNode) node() {}
func (f *FilterNode) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	var sb strings.Builder
	sb.WriteString("(" + f.Name)
	for _, arg := range f.Args {
		sb.WriteString(" " + arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// LogicalNode is "and", "or" or "not" over its children.
type LogicalNode struct {
	Op       string
	Children []Node
}

func (l *LogicalNode) node() {}
func (l *LogicalNode) String() string {
	var sb strings.Builder
	sb.WriteString("(" + l.Op)
	for _, child := range l.Children {
		sb.WriteString(" " + child.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// ComparisonNode compares two numeric operands.
type ComparisonNode struct {
	Op    string // "<", ">", "<=", ">=", "=="
	Left  Node
	Right Node
}

func (c *ComparisonNode) node() {}
func (c *ComparisonNode) String() string {
	return "(" + c.Op + " " + c.Left.String() + " " + c.Right.String() + ")"
}

// PieceNode is a piece designator: K, q, A, a, _, ? or a set like [RQ].
type PieceNode struct {
	Designator string
}

func (p *PieceNode) node() {}
func (p *PieceNode) String() string {
	return p.Designator
}

// SquareNode is a square designator: e4, ".", [a-h]1, a[1-8], [a-d][1-4].
type SquareNode struct {
	Designator string
}

func (s *SquareNode) node() {}
func (s *SquareNode) String() string {
	return s.Designator
}

// NumberNode is an integer literal.
type NumberNode struct {
	Value int
}

func (n *NumberNode) node() {}
func (n *NumberNode) String() string {
	return strconv.Itoa(n.Value)
}
