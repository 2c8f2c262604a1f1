package toto

// Result holds the fields resolved from one input document.
//
// A field missing from Fields was not found. A present field holding an
// empty string was found but empty.
type Result struct {
	Fields map[Field]*Node

	// Source is the original input, shown verbatim when no field could be
	// recognized.
	Source *Node
}

// Get returns the value of a field if it was found. Nil and null values
// count as not found.
func (r Result) Get(field Field) (*Node, bool) {
	v, ok := r.Fields[field]
	if !ok || v.IsNull() {
		return nil, false
	}
	return v, true
}

// ExtractJSON resolves every field from an arbitrary JSON document using
// the tree search of Locate. There is no textual fallback for JSON input.
func ExtractJSON(doc *Node) Result {
	result := Result{
		Fields: make(map[Field]*Node),
		Source: doc,
	}
	for _, field := range Fields {
		if v, ok := Locate(doc, field); ok {
			result.Fields[field] = v
		}
	}
	return result
}
