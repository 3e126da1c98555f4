package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/schema"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [form]",
	Short: "Show a form definition",
	Long:  `Renders a form definition as annotated markdown, or as a Mermaid diagram with --mermaid. Without an argument, lists all available forms.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		mermaid, _ := cmd.Flags().GetBool("mermaid")

		eng, err := espalier.New(dir)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		ctx := cmd.Context()

		if len(args) == 0 {
			names, err := eng.Definitions(ctx)
			if err != nil {
				fmt.Printf("Error listing forms: %v\n", err)
				os.Exit(1)
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return
		}

		def, err := eng.Definition(ctx, args[0])
		if err != nil {
			fmt.Printf("Error resolving form: %v\n", err)
			os.Exit(1)
		}

		if mermaid {
			fmt.Print(graph.GenerateMermaid(def))
			return
		}

		render := tui.NewRenderer()
		out, err := render(describeForm(def))
		if err != nil {
			// Fall back to the raw markdown if the renderer chokes.
			out = describeForm(def)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("mermaid", false, "Output a Mermaid diagram instead of markdown")
}

// describeForm renders a definition as markdown.
func describeForm(f schema.Form) string {
	var sb strings.Builder

	title := f.Title
	if title == "" {
		title = f.Name
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if f.Help != "" {
		fmt.Fprintf(&sb, "%s\n\n", f.Help)
	}

	describeFields(&sb, f.Fields, 0)
	return sb.String()
}

func describeFields(sb *strings.Builder, fields []schema.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, field := range fields {
		typ := field.Type
		if typ == "" {
			typ = "text"
		}
		var marks []string
		if field.Required {
			marks = append(marks, "required")
		}
		if field.Disabled {
			marks = append(marks, "disabled")
		}
		if field.Rules != "" {
			marks = append(marks, "rules: "+field.Rules)
		}

		fmt.Fprintf(sb, "%s- **%s** (%s)", indent, field.Name, typ)
		if len(marks) > 0 {
			fmt.Fprintf(sb, " [%s]", strings.Join(marks, ", "))
		}
		sb.WriteString("\n")

		if len(field.Options) > 0 {
			for _, opt := range field.Options {
				label := opt.Label
				if label == "" {
					label = opt.Value
				}
				fmt.Fprintf(sb, "%s  - `%s` %s\n", indent, opt.Value, label)
			}
		}
		if len(field.Fields) > 0 {
			describeFields(sb, field.Fields, depth+1)
		}
	}
}
