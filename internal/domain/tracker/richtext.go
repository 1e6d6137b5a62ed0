package tracker

import "strings"

// RichTextNode is a generic rich-document tree node (Atlassian Document
// Format and similar). Only the shape matters here, not the schema version.
type RichTextNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Content []RichTextNode `json:"content,omitempty"`
}

// FlattenRichText collects every leaf text node in document order.
// Block-level nodes (paragraphs, headings, list items) are separated by
// newlines so the plain-text rendition stays readable.
func FlattenRichText(root *RichTextNode) string {
	if root == nil {
		return ""
	}

	var sb strings.Builder
	flattenInto(&sb, *root)
	return strings.TrimSpace(sb.String())
}

func flattenInto(sb *strings.Builder, node RichTextNode) {
	if blockNode(node.Type) && sb.Len() > 0 {
		sb.WriteString("\n")
	}
	if node.Text != "" {
		sb.WriteString(node.Text)
	}
	for _, child := range node.Content {
		flattenInto(sb, child)
	}
}

func blockNode(nodeType string) bool {
	switch nodeType {
	case "paragraph", "heading", "listItem", "codeBlock", "blockquote":
		return true
	}
	return false
}
