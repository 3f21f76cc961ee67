package driver

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"nock/reducer-go/pkg/noun"
)

// LoadPair reads a standalone YAML file holding subject and formula
// noun literals, as used by the eval command.
func LoadPair(path string) (noun.Noun, noun.Noun, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pair: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("pair: open %s: %w", abs, err)
	}
	defer file.Close()

	var raw struct {
		Subject yaml.Node `yaml:"subject"`
		Formula yaml.Node `yaml:"formula"`
	}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("pair: parse %s: %w", abs, err)
	}

	subject, err := DecodeNoun(&raw.Subject)
	if err != nil {
		return nil, nil, fmt.Errorf("pair: %s subject: %w", abs, err)
	}
	formula, err := DecodeNoun(&raw.Formula)
	if err != nil {
		return nil, nil, fmt.Errorf("pair: %s formula: %w", abs, err)
	}
	return subject, formula, nil
}

// DecodeNoun reads a noun literal from a YAML node: an integer scalar
// is an atom, a symbolic operator name is the corresponding opcode
// atom, and a sequence of two or more entries folds right-to-left into
// nested cells, so [a, b, c] means (a . (b . c)).
func DecodeNoun(node *yaml.Node) (noun.Noun, error) {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil || node.IsZero() {
		return nil, fmt.Errorf("noun literal is missing")
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return decodeLeaf(node)
	case yaml.SequenceNode:
		if len(node.Content) < 2 {
			return nil, fmt.Errorf("line %d: a cell needs at least two entries", node.Line)
		}
		parts := make([]noun.Noun, len(node.Content))
		for i, child := range node.Content {
			part, err := DecodeNoun(child)
			if err != nil {
				return nil, err
			}
			parts[i] = part
		}
		return noun.C(parts...), nil
	default:
		return nil, fmt.Errorf("line %d: noun literals are integers, operator names, or sequences", node.Line)
	}
}

func decodeLeaf(node *yaml.Node) (noun.Noun, error) {
	text := strings.TrimSpace(node.Value)
	if op, ok := noun.OpByName(text); ok {
		return noun.OpNoun(op), nil
	}
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("line %d: %q is neither a natural number nor an operator name", node.Line, node.Value)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("line %d: atoms are naturals, got %s", node.Line, text)
	}
	return noun.NewAtom(value), nil
}
