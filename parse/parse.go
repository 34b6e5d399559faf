// Package parse adapts an external YAML parser into document trees.
//
// The heavy lifting of tokenizing and event parsing is delegated to
// github.com/goccy/go-yaml; this package walks its AST and produces a
// tree.Tree carrying anchors, aliases, tags, style flags, and 0-based
// source positions. Reference resolution is not performed here; see
// tree.Resolver.
package parse

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/signadot/ydoc-format/go-ydoc/tree"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse converts d into a document tree. Only the first document of a
// multi-document input is read. The returned tree still carries
// anchor and alias markup.
func Parse(d []byte, opts ...ParseOption) (*tree.Tree, error) {
	po := &parseOpts{positions: true}
	for _, f := range opts {
		f(po)
	}
	d = bytes.TrimPrefix(d, utf8BOM)
	if po.headerOnly {
		if i := bytes.Index(d, []byte("\n---")); i >= 0 {
			d = d[:i+1]
		}
	}
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, po.source, err)
	}
	t := tree.New()
	t.Source = po.source
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return t, nil
	}
	if err := fromAST(t, t.Root(), f.Docs[0].Body, po); err != nil {
		return nil, err
	}
	return t, nil
}

func fromAST(t *tree.Tree, id tree.ID, n ast.Node, po *parseOpts) error {
	switch x := n.(type) {
	case *ast.AnchorNode:
		t.SetAnchor(id, nodeText(x.Name))
		return fromAST(t, id, x.Value, po)
	case *ast.AliasNode:
		setPos(t, id, x.GetToken(), po)
		t.SetRef(id, nodeText(x.Value))
		return nil
	case *ast.TagNode:
		t.SetTag(id, x.Start.Value)
		return fromAST(t, id, x.Value, po)
	case *ast.MappingNode:
		setPos(t, id, x.GetToken(), po)
		t.AddFlags(id, tree.Map)
		if x.IsFlowStyle {
			t.AddFlags(id, tree.Flow)
		}
		for _, kv := range x.Values {
			if err := mapEntry(t, id, kv, po); err != nil {
				return err
			}
		}
		return nil
	case *ast.MappingValueNode:
		// goccy represents a single-pair mapping as a bare
		// MappingValueNode
		setPos(t, id, x.GetToken(), po)
		t.AddFlags(id, tree.Map)
		return mapEntry(t, id, x, po)
	case *ast.SequenceNode:
		setPos(t, id, x.GetToken(), po)
		t.AddFlags(id, tree.Seq)
		if x.IsFlowStyle {
			t.AddFlags(id, tree.Flow)
		}
		for _, v := range x.Values {
			c := t.AppendChild(id)
			if err := fromAST(t, c, v, po); err != nil {
				return err
			}
		}
		return nil
	case *ast.StringNode:
		setPos(t, id, x.GetToken(), po)
		t.SetVal(id, x.Value)
		if tk := x.GetToken(); tk != nil &&
			(tk.Type == token.DoubleQuoteType || tk.Type == token.SingleQuoteType) {
			t.AddFlags(id, tree.Quoted)
		}
		return nil
	case *ast.LiteralNode:
		setPos(t, id, x.GetToken(), po)
		t.SetVal(id, x.Value.Value)
		t.AddFlags(id, tree.Block)
		return nil
	case *ast.NullNode:
		setPos(t, id, x.GetToken(), po)
		t.SetVal(id, "")
		return nil
	case *ast.MergeKeyNode:
		setPos(t, id, x.GetToken(), po)
		t.SetVal(id, "<<")
		return nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.InfinityNode, *ast.NanNode:
		setPos(t, id, n.GetToken(), po)
		t.SetVal(id, n.GetToken().Value)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupported, n)
	}
}

func mapEntry(t *tree.Tree, parent tree.ID, kv *ast.MappingValueNode, po *parseOpts) error {
	c := t.AppendChild(parent)
	t.SetKey(c, keyText(kv.Key))
	setPos(t, c, kv.Key.GetToken(), po)
	return fromAST(t, c, kv.Value, po)
}

func keyText(k ast.MapKeyNode) string {
	switch x := k.(type) {
	case *ast.StringNode:
		return x.Value
	case *ast.MergeKeyNode:
		return "<<"
	default:
		return k.GetToken().Value
	}
}

func nodeText(n ast.Node) string {
	if s, ok := n.(*ast.StringNode); ok {
		return s.Value
	}
	return n.GetToken().Value
}

// setPos records the token's position, converted from the parser's
// 1-based lines and columns to the tree's 0-based convention. The
// first position recorded for a node wins, so keyed children report
// their key's position the way the resolver and reader errors expect.
func setPos(t *tree.Tree, id tree.ID, tk *token.Token, po *parseOpts) {
	if !po.positions || tk == nil || tk.Position == nil {
		return
	}
	if _, ok := t.Pos(id); ok {
		return
	}
	t.SetPos(id, tree.Pos{
		Offset: tk.Position.Offset,
		Line:   tk.Position.Line - 1,
		Col:    tk.Position.Column - 1,
	})
}
