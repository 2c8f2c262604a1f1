package toto

import (
	"context"
	"strings"
	"time"
)

// DefaultLocateTimeout bounds the wait for a page sub-region to become
// visible before it is treated as not found.
const DefaultLocateTimeout = 30 * time.Second

// Locate searches the tree depth-first, in document order, for the first
// object key matching one of the field's aliases and returns its value.
//
// Keys are handled one at a time: a key that does not match has its value
// searched before the next sibling key is checked, so an earlier subtree
// wins over a later, shallower key. A matching key ends the search of its
// object. If its value is null the object yields nothing and the search
// resumes in the parent; otherwise the value is returned as is.
func Locate(root *Node, field Field) (*Node, bool) {
	if root == nil {
		return nil, false
	}

	type frame struct {
		node *Node
		next int
	}

	stack := []*frame{{node: root}}
	visited := map[*Node]bool{root: true}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		n := top.node

		var child *Node
		switch n.Kind {
		case KindObject:
			if top.next >= len(n.Members) {
				stack = stack[:len(stack)-1]
				continue
			}
			m := n.Members[top.next]
			top.next++
			if field.Matches(m.Key) {
				if m.Value.IsNull() {
					stack = stack[:len(stack)-1]
					continue
				}
				return m.Value, true
			}
			child = m.Value
		case KindArray:
			if top.next >= len(n.Items) {
				stack = stack[:len(stack)-1]
				continue
			}
			child = n.Items[top.next]
			top.next++
		default:
			stack = stack[:len(stack)-1]
			continue
		}

		if child == nil || visited[child] {
			continue
		}
		if child.Kind == KindObject || child.Kind == KindArray {
			visited[child] = true
			stack = append(stack, &frame{node: child})
		}
	}

	return nil, false
}

// LocateRegion returns the trimmed text of the first visible sub-region of
// r matching selector. It waits at most timeout for the sub-region; a
// missing region, a timeout or a read failure all report absence.
func LocateRegion(ctx context.Context, r Region, selector string, timeout time.Duration) (string, bool) {
	if r == nil || selector == "" {
		return "", false
	}
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sub, err := r.Find(ctx, selector)
	if err != nil {
		return "", false
	}

	text, err := sub.Text(ctx)
	if err != nil {
		return "", false
	}

	return strings.TrimSpace(text), true
}
