package espalier

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/form"
)

// Report is the adapter-agnostic outcome of binding a submission to a form.
// The HTTP, MCP and CLI layers all serialize it directly.
type Report struct {
	// Form is the bound form's name.
	Form string `json:"form"`

	// Valid is false when any node in the tree recorded an error.
	Valid bool `json:"valid"`

	// Synchronized is false when any node's reverse pipeline failed. Treat
	// it like a validation failure for presentation purposes.
	Synchronized bool `json:"synchronized"`

	// Empty reports whether the whole tree bound to empty data.
	Empty bool `json:"empty"`

	// Errors maps dotted field paths to their messages. The root's own
	// errors sit under the empty path "".
	Errors map[string][]string `json:"errors,omitempty"`

	// Extra lists submitted top-level keys that matched no field.
	Extra []string `json:"extra,omitempty"`

	// Data is the reconciled storage-format snapshot of the tree.
	Data domain.Value `json:"data"`
}

// NewReport flattens a bound node tree into a Report.
func NewReport(root *form.Node) (*Report, error) {
	valid, err := root.Valid()
	if err != nil {
		return nil, err
	}
	storage, err := root.StorageValue()
	if err != nil {
		return nil, err
	}

	r := &Report{
		Form:         root.Name(),
		Valid:        valid,
		Synchronized: true,
		Empty:        root.Empty(),
		Errors:       make(map[string][]string),
		Extra:        root.Extra().Keys(),
		Data:         storage,
	}
	collect(r, "", root)
	if len(r.Errors) == 0 {
		r.Errors = nil
	}
	return r, nil
}

func collect(r *Report, path string, n *form.Node) {
	if !n.Synchronized() {
		r.Synchronized = false
	}
	for _, e := range n.OwnErrors() {
		key := joinPath(path, e.Path)
		r.Errors[key] = append(r.Errors[key], e.Message)
	}
	for _, child := range n.Children() {
		collect(r, joinPath(path, child.Name()), child)
	}
}

func joinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}
