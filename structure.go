package main

// structurer nests the flat keyword markers left by classify into
// conditional, beginUntil, and doLoop block nodes by recursive descent.
type structurer struct {
	nodes []Node
	i     int
}

// structure replaces every IF [ELSE] THEN, BEGIN UNTIL, and DO LOOP run in
// nodes with a single block node. End of command markers inside a block are
// dropped, since a block may span several lines.
func (vm *VM) structure(nodes []Node) ([]Node, error) {
	st := structurer{nodes: nodes}
	out, _, err := st.block("")
	return out, err
}

// block collects nodes until one of the closers; opener names the keyword
// that began the block, and is empty at top level.
func (st *structurer) block(opener string, closers ...string) (out []Node, closer string, err error) {
	for st.i < len(st.nodes) {
		node := st.nodes[st.i]
		st.i++

		if node.Kind == endNode && opener != "" {
			continue
		}
		if node.Kind != keywordNode {
			out = append(out, node)
			continue
		}

		switch kw := node.Name; kw {
		case "IF":
			cond, err := st.conditional()
			if err != nil {
				return nil, "", err
			}
			out = append(out, cond)

		case "BEGIN":
			body, _, err := st.block(kw, "UNTIL")
			if err != nil {
				return nil, "", err
			}
			out = append(out, Node{Kind: beginUntilNode, Body: body})

		case "DO":
			body, _, err := st.block(kw, "LOOP")
			if err != nil {
				return nil, "", err
			}
			out = append(out, Node{Kind: doLoopNode, Body: body})

		default:
			for _, c := range closers {
				if kw == c {
					return out, kw, nil
				}
			}
			return nil, "", unexpectedError(kw)
		}
	}
	if opener != "" {
		return nil, "", unmatchedError(opener)
	}
	return out, "", nil
}

func (st *structurer) conditional() (Node, error) {
	then, closer, err := st.block("IF", "ELSE", "THEN")
	if err != nil {
		return Node{}, err
	}
	var els []Node
	if closer == "ELSE" {
		if els, _, err = st.block("IF", "THEN"); err != nil {
			return Node{}, err
		}
	}
	return Node{Kind: conditionalNode, Then: then, Else: els}, nil
}
