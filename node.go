package toto

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Kind identifies the variant held by a Node.
type Kind int

// Node kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded JSON value. Objects keep their members in document
// order and numbers keep their literal text, so a Node re-encodes to the
// same sequence of keys and values it was parsed from.
type Node struct {
	Kind Kind

	// Scalar holds the literal text of a number or boolean, or the
	// decoded value of a string.
	Scalar string

	Members []Member // KindObject
	Items   []*Node  // KindArray
}

// NullNode returns a JSON null.
func NullNode() *Node { return &Node{Kind: KindNull} }

// StringNode returns a JSON string.
func StringNode(s string) *Node { return &Node{Kind: KindString, Scalar: s} }

// NumberNode returns a JSON number with the given literal text.
func NumberNode(literal string) *Node { return &Node{Kind: KindNumber, Scalar: literal} }

// BoolNode returns a JSON boolean.
func BoolNode(b bool) *Node {
	if b {
		return &Node{Kind: KindBool, Scalar: "true"}
	}
	return &Node{Kind: KindBool, Scalar: "false"}
}

// ObjectNode returns a JSON object with members in the given order.
func ObjectNode(members ...Member) *Node { return &Node{Kind: KindObject, Members: members} }

// ArrayNode returns a JSON array.
func ArrayNode(items ...*Node) *Node { return &Node{Kind: KindArray, Items: items} }

// IsNull reports whether n is nil or a JSON null.
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == KindNull
}

// Text returns the textual form of the node: strings as their value,
// numbers and booleans as their literal, null as "null", and objects and
// arrays as compact JSON.
func (n *Node) Text() string {
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case KindString, KindNumber, KindBool:
		return n.Scalar
	case KindObject, KindArray:
		return string(n.compact())
	default:
		return "null"
	}
}

// MarshalJSON encodes the node preserving member order.
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.compact(), nil
}

// Indent returns the node as JSON indented with two spaces per level,
// without escaping HTML characters inside strings.
func (n *Node) Indent() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, n.compact(), "", "  "); err != nil {
		return n.Text()
	}
	return buf.String()
}

func (n *Node) compact() []byte {
	var buf bytes.Buffer
	n.encode(&buf)
	return buf.Bytes()
}

func (n *Node) encode(buf *bytes.Buffer) {
	if n == nil {
		buf.WriteString("null")
		return
	}
	switch n.Kind {
	case KindString:
		encodeString(buf, n.Scalar)
	case KindNumber, KindBool:
		buf.WriteString(n.Scalar)
	case KindObject:
		buf.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeString(buf, m.Key)
			buf.WriteByte(':')
			m.Value.encode(buf)
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.encode(buf)
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
}

// encodeString writes s as a JSON string literal. HTML characters are left
// alone; callers escape for their output format.
func encodeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}

// ParseJSON decodes a single JSON value from r into a Node tree.
// Returns EINVALID if the input is not exactly one well-formed JSON value.
func ParseJSON(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := parseValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Errorf(EINVALID, "unexpected end of JSON input")
		}
		return nil, Errorf(EINVALID, "invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, Errorf(EINVALID, "invalid JSON: unexpected data after top-level value")
	}
	return n, nil
}

// ParseJSONString is like ParseJSON but reads from a string.
func ParseJSONString(s string) (*Node, error) {
	return ParseJSON(strings.NewReader(s))
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n := &Node{Kind: KindObject}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.Members = append(n.Members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &Node{Kind: KindArray}
			for dec.More() {
				item, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.Items = append(n.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		}
		return nil, errors.New("unexpected delimiter " + v.String())
	case string:
		return StringNode(v), nil
	case json.Number:
		return NumberNode(v.String()), nil
	case bool:
		return BoolNode(v), nil
	case nil:
		return NullNode(), nil
	}
	return nil, errors.New("unexpected token")
}
