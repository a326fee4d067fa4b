package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lbrandt/suitree/pkg/errors"
)

// Format identifies a tree document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath guesses the document format from a file extension,
// defaulting to JSON.
func FormatForPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// rawNode mirrors the input document shape. Pointer fields distinguish
// absent values from zero values; Leaf stays untyped because the field
// historically carried either a bool marker or a raw margin number.
type rawNode struct {
	Feature   *string  `json:"feature" yaml:"feature"`
	Threshold *float64 `json:"threshold" yaml:"threshold"`
	Yes       *rawNode `json:"yes" yaml:"yes"`
	No        *rawNode `json:"no" yaml:"no"`
	Suit      *float64 `json:"suit" yaml:"suit"`
	Leaf      any      `json:"leaf" yaml:"leaf"`
	Label     *string  `json:"label" yaml:"label"`
}

// Decode reads a tree document in the given format.
//
// Decode fails only when the document itself cannot be parsed. Shape
// problems inside a parseable document (missing thresholds, leaf flags on
// split nodes, childless splits) are repaired to the nearest valid tree and
// reported through diagnostics. An empty document decodes to an empty tree.
func Decode(r io.Reader, format Format) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to read tree document")
	}

	if len(data) == 0 {
		return &Tree{}, nil
	}

	var raw rawNode
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse YAML tree")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse JSON tree")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown tree format %q", format)
	}

	return &Tree{Root: buildNode(&raw, "root")}, nil
}

// DecodeJSON reads a JSON tree document.
func DecodeJSON(r io.Reader) (*Tree, error) { return Decode(r, FormatJSON) }

// DecodeYAML reads a YAML tree document.
func DecodeYAML(r io.Reader) (*Tree, error) { return Decode(r, FormatYAML) }

// buildNode converts one raw node and its subtree, repairing invalid shapes.
// The path parameter names the node's position in diagnostics ("root.no.yes").
func buildNode(raw *rawNode, path string) *Node {
	if raw == nil {
		return nil
	}

	hasChildren := raw.Yes != nil || raw.No != nil
	margin, leafMarked := leafPayload(raw.Leaf)

	switch {
	case leafMarked && hasChildren:
		diag("LEAF_WITH_CHILDREN", "node marked as leaf still has branches, dropping them", "path", path)
		return buildLeaf(raw, margin)

	case leafMarked:
		return buildLeaf(raw, margin)

	case !hasChildren:
		if raw.Feature != nil || raw.Threshold != nil {
			diag("SPLIT_WITHOUT_BRANCHES", "split node has no branches, treating as leaf", "path", path)
		}
		return buildLeaf(raw, math.NaN())
	}

	n := &Node{
		Kind:      KindInternal,
		Threshold: nan(),
	}
	if raw.Feature != nil {
		n.Feature = *raw.Feature
	} else {
		diag("MISSING_FEATURE", "split node has no feature code", "path", path)
	}
	if raw.Threshold != nil {
		n.Threshold = *raw.Threshold
		n.HasThreshold = true
	} else {
		diag("MISSING_THRESHOLD", "split node has no threshold", "path", path)
	}
	if raw.Label != nil {
		n.Label = *raw.Label
	}

	n.No = buildNode(raw.No, path+".no")
	n.Yes = buildNode(raw.Yes, path+".yes")
	return n
}

// buildLeaf converts a raw node into a leaf. Suitability resolves in order:
// an explicit suit value, then a sigmoid of the numeric leaf margin, then
// NaN for the layout stage to default.
func buildLeaf(raw *rawNode, margin float64) *Node {
	n := &Node{
		Kind:   KindLeaf,
		Suit:   nan(),
		Margin: margin,
	}
	if raw.Label != nil {
		n.Label = *raw.Label
	}

	switch {
	case raw.Suit != nil:
		n.Suit = *raw.Suit
	case !math.IsNaN(margin):
		n.Suit = sigmoid(margin)
	}
	return n
}

// leafPayload interprets the untyped leaf field. A bool marks the node as a
// leaf; a number both marks it and carries the raw decision margin. Any
// other type is reported and ignored.
func leafPayload(v any) (margin float64, marked bool) {
	switch val := v.(type) {
	case nil:
		return math.NaN(), false
	case bool:
		return math.NaN(), val
	case float64:
		return val, true
	case int:
		return float64(val), true
	default:
		diag("UNEXPECTED_LEAF_PAYLOAD", fmt.Sprintf("leaf field has unexpected type %T, ignoring", v))
		return math.NaN(), false
	}
}
