package main

import (
	"strings"

	"github.com/jcorbin/treeforth/internal/fileinput"
)

// rawToken is one whitespace delimited word of source, or an end of command
// marker standing for a line break.
type rawToken struct {
	Text string
	EOC  bool
	Loc  fileinput.Location
}

func (tok rawToken) String() string {
	if tok.EOC {
		return "EOC"
	}
	return tok.Text
}

// classifier turns raw tokens into flat nodes, capturing user word
// definitions and string literals along the way. Control keywords are left
// as bare keyword nodes for structure building.
type classifier struct {
	vm    *VM
	nodes []Node

	defining bool
	defAt    fileinput.Location
	def      []rawToken

	inString bool
	strAt    fileinput.Location
	str      []string
}

// classify is re-entrant: definition bodies are classified by a nested call
// with its own classifier state.
func (vm *VM) classify(tokens []rawToken) ([]Node, error) {
	cl := classifier{vm: vm}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if cl.defining {
			if !tok.EOC && tok.Text == ";" {
				if err := cl.define(); err != nil {
					return nil, err
				}
			} else if !tok.EOC && tok.Text == ":" {
				return nil, parseError{tok.Loc, errNestedDefinition}
			} else {
				cl.def = append(cl.def, tok)
			}
			continue
		}

		if cl.inString {
			if tok.EOC {
				return nil, parseError{cl.strAt, errUnterminatedString}
			}
			cl.accumulate(tok.Text)
			continue
		}

		if tok.EOC {
			cl.nodes = append(cl.nodes, Node{Kind: endNode})
			continue
		}

		switch {
		case tok.Text == ":":
			cl.defining, cl.defAt, cl.def = true, tok.Loc, nil

		case strings.HasPrefix(tok.Text, `."`):
			cl.inString, cl.strAt, cl.str = true, tok.Loc, nil
			if rest := tok.Text[2:]; rest != "" {
				cl.accumulate(rest)
			}

		case strings.EqualFold(tok.Text, "VARIABLE"):
			if i+1 >= len(tokens) || tokens[i+1].EOC {
				return nil, parseError{tok.Loc, errMissingVariableName}
			}
			i++
			name := strings.ToUpper(tokens[i].Text)
			addr, err := vm.heap.declare(name)
			if err != nil {
				return nil, parseError{tokens[i].Loc, err}
			}
			vm.logf("<", "variable %v @%v", name, addr)

		default:
			node, err := vm.classifyWord(tok.Text)
			if err != nil {
				return nil, parseError{tok.Loc, err}
			}
			cl.nodes = append(cl.nodes, node)
		}
	}

	if cl.defining {
		return nil, parseError{cl.defAt, errUnterminatedDefinition}
	}
	if cl.inString {
		return nil, parseError{cl.strAt, errUnterminatedString}
	}
	return cl.nodes, nil
}

// accumulate adds a fragment to the current string literal, closing it when
// the fragment ends in a double quote.
func (cl *classifier) accumulate(text string) {
	if !strings.HasSuffix(text, `"`) {
		cl.str = append(cl.str, text)
		return
	}
	cl.str = append(cl.str, text[:len(text)-1])
	cl.nodes = append(cl.nodes, Node{
		Kind:  printNode,
		Value: Text(strings.Join(cl.str, " ")),
	})
	cl.inString, cl.str = false, nil
}

// define completes a ": name ... ;" definition: the name is reserved before
// the body is parsed, so that the body may refer to the word itself.
func (cl *classifier) define() error {
	vm, def := cl.vm, cl.def
	cl.defining, cl.def = false, nil

	for len(def) > 0 && def[0].EOC {
		def = def[1:]
	}
	if len(def) == 0 {
		return parseError{cl.defAt, errMissingWordName}
	}
	name := strings.ToUpper(def[0].Text)
	vm.words[name] = nil

	body, err := vm.classify(def[1:])
	if err == nil {
		body, err = vm.structure(body)
	}
	if err != nil {
		return err
	}
	body = stripEnds(body)
	vm.words[name] = body
	vm.logf(":", "%v %v ;", name, formatNodes(body))
	return nil
}

// classifyWord resolves a single word, case insensitively, in priority
// order: control keywords, heap variables, builtins, integer literals, and
// finally user words.
func (vm *VM) classifyWord(text string) (Node, error) {
	word := strings.ToUpper(text)
	switch word {
	case "IF", "ELSE", "THEN", "BEGIN", "UNTIL", "DO", "LOOP":
		return Node{Kind: keywordNode, Name: word}, nil
	case "I":
		return Node{Kind: loopIndexNode}, nil
	case "!":
		return Node{Kind: storeNode}, nil
	case "@":
		return Node{Kind: fetchNode}, nil
	}
	if _, declared := vm.heap.address(word); declared {
		return Node{Kind: variableNode, Name: word}, nil
	}
	if code, ok := lookupBuiltin(word); ok {
		return Node{Kind: builtinNode, Name: code.String()}, nil
	}
	if val, ok := parseLiteral(text); ok {
		return Node{Kind: literalNode, Value: val}, nil
	}
	if _, defined := vm.words[word]; defined {
		return Node{Kind: userWordNode, Name: word}, nil
	}
	return Node{}, unknownTokenError(text)
}

func stripEnds(nodes []Node) []Node {
	out := nodes[:0]
	for _, node := range nodes {
		if node.Kind != endNode {
			out = append(out, node)
		}
	}
	return out
}
