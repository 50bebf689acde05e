package structure

// OutlineNode is one heading in a document's nested outline.
type OutlineNode struct {
	Title    string         `json:"title"`
	Level    int            `json:"level"`
	Page     int            `json:"page"`
	Children []*OutlineNode `json:"children,omitempty"`
}

// BuildOutline nests a flat heading sequence by level. A heading becomes a
// child of the nearest preceding heading with a smaller level; level jumps
// (1 straight to 3) nest under whatever is open rather than inventing
// intermediate levels.
func BuildOutline(headings []HeadingInfo) []*OutlineNode {
	var roots []*OutlineNode
	var stack []*OutlineNode

	for _, h := range headings {
		node := &OutlineNode{Title: h.Title, Level: h.Level, Page: h.Page}

		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}
