package doctree

import "encoding/json"

type jsonNode struct {
	Kind        string      `json:"kind"`
	Name        string      `json:"name,omitempty"`
	Scope       string      `json:"scope,omitempty"`
	Direction   string      `json:"direction,omitempty"`
	Default     string      `json:"default,omitempty"`
	Parent      string      `json:"parent,omitempty"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type,omitempty"`
	Children    []*jsonNode `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

// Description and Type children fold into their owner's fields.
func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind:      n.Kind.String(),
		Name:      n.Name,
		Scope:     n.Scope,
		Direction: n.Direction,
		Default:   n.Default,
		Parent:    n.Parent,
	}

	switch n.Kind {
	case KindDescription:
		jn.Description = n.Text
	case KindType:
		jn.Type = n.TokenString()
	}

	for _, child := range n.Children {
		switch child.Kind {
		case KindDescription:
			jn.Description = child.Text
		case KindType:
			jn.Type = child.TokenString()
		default:
			jn.Children = append(jn.Children, child.toJSON())
		}
	}
	return jn
}
