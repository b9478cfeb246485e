package main

import (
	"strconv"
	"strings"
)

type nodeKind uint8

const (
	invalidNode nodeKind = iota

	literalNode     // push Value
	printNode       // print Value.Text, from a ." string literal
	builtinNode     // dispatch the builtin Name
	userWordNode    // call the user word Name
	conditionalNode // IF Then ELSE Else THEN
	beginUntilNode  // BEGIN Body UNTIL
	doLoopNode      // DO Body LOOP
	variableNode    // select the heap variable Name for the next ! or @
	storeNode       // !
	fetchNode       // @
	loopIndexNode   // I
	endNode         // end of command

	// keywordNode is a bare control keyword, only present between
	// classification and structure building.
	keywordNode
)

var nodeKindNames = [...]string{
	"invalid",
	"literal",
	"print",
	"builtin",
	"userWord",
	"conditional",
	"beginUntil",
	"doLoop",
	"variable",
	"store",
	"fetch",
	"loopIndex",
	"end",
	"keyword",
}

func (kind nodeKind) String() string {
	if int(kind) < len(nodeKindNames) {
		return nodeKindNames[kind]
	}
	return "nodeKind(" + strconv.Itoa(int(kind)) + ")"
}

// Node is one element of a program tree. Block nodes (conditional,
// beginUntil, doLoop) exclusively own their child slices.
type Node struct {
	Kind  nodeKind `cbor:"kind"`
	Name  string   `cbor:"name,omitempty"`
	Value Value    `cbor:"value"`
	Then  []Node   `cbor:"then,omitempty"`
	Else  []Node   `cbor:"else,omitempty"`
	Body  []Node   `cbor:"body,omitempty"`
}

// String renders the node back into source form.
func (n Node) String() string {
	var sb strings.Builder
	n.format(&sb)
	return sb.String()
}

func (n Node) format(sb *strings.Builder) {
	switch n.Kind {
	case literalNode:
		if n.Value.IsText {
			sb.WriteString(strconv.Quote(n.Value.Text))
		} else {
			sb.WriteString(strconv.Itoa(n.Value.Int))
		}
	case printNode:
		sb.WriteString(`." `)
		sb.WriteString(n.Value.Text)
		sb.WriteByte('"')
	case builtinNode, userWordNode, variableNode, keywordNode:
		sb.WriteString(n.Name)
	case conditionalNode:
		sb.WriteString("IF")
		formatBlock(sb, n.Then)
		if len(n.Else) > 0 {
			sb.WriteString(" ELSE")
			formatBlock(sb, n.Else)
		}
		sb.WriteString(" THEN")
	case beginUntilNode:
		sb.WriteString("BEGIN")
		formatBlock(sb, n.Body)
		sb.WriteString(" UNTIL")
	case doLoopNode:
		sb.WriteString("DO")
		formatBlock(sb, n.Body)
		sb.WriteString(" LOOP")
	case storeNode:
		sb.WriteByte('!')
	case fetchNode:
		sb.WriteByte('@')
	case loopIndexNode:
		sb.WriteByte('I')
	case endNode:
		sb.WriteString("EOC")
	default:
		sb.WriteString("<")
		sb.WriteString(n.Kind.String())
		sb.WriteString(">")
	}
}

func formatBlock(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		sb.WriteByte(' ')
		n.format(sb)
	}
}

// formatNodes renders a node sequence as space separated source.
func formatNodes(nodes []Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		n.format(&sb)
	}
	return sb.String()
}
