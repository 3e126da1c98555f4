package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/schema"
)

// GenerateMermaid produces a Mermaid flowchart syntax string for a form
// definition. It applies semantic styling:
// - Form root: ((Circle))
// - Group: [[Subroutine]]
// - Choice: {Diamond}
// - Other fields: [Rectangle]
// Required fields get a bold border, disabled fields a dashed one.
func GenerateMermaid(f schema.Form) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	rootID := sanitizeMermaidID(f.Name)
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", rootID, f.Name))

	var required, disabled []string
	writeFields(&sb, rootID, f.Name, f.Fields, &required, &disabled)

	if len(required) > 0 || len(disabled) > 0 {
		sb.WriteString("\n    %% Field Styles\n")
		sb.WriteString("    classDef required stroke-width:3px;\n")
		sb.WriteString("    classDef disabled stroke-dasharray: 5 5;\n")
		for _, id := range required {
			sb.WriteString(fmt.Sprintf("    class %s required;\n", id))
		}
		for _, id := range disabled {
			sb.WriteString(fmt.Sprintf("    class %s disabled;\n", id))
		}
	}

	return sb.String()
}

func writeFields(sb *strings.Builder, parentID, parentPath string, fields []schema.Field, required, disabled *[]string) {
	for _, field := range fields {
		path := parentPath + "." + field.Name
		safeID := sanitizeMermaidID(path)

		label := field.Name
		if field.Type != "" && field.Type != "group" {
			label = fmt.Sprintf("%s : %s", field.Name, field.Type)
		}

		opener, closer := "[", "]"
		switch field.Type {
		case "group":
			opener, closer = "[[", "]]" // Subroutine
		case "choice":
			opener, closer = "{", "}" // Diamond
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, safeID))

		if field.Required {
			*required = append(*required, safeID)
		}
		if field.Disabled {
			*disabled = append(*disabled, safeID)
		}

		if len(field.Fields) > 0 {
			writeFields(sb, safeID, path, field.Fields, required, disabled)
		}
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
