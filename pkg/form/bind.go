package form

import (
	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
)

// Bind pulls a submitted presentation-format value back through the reverse
// pipeline and finalizes the node: submission distributed to children,
// children merged through the data mapper, reverse view and model chains
// applied, synchronization and validity state settled. A node binds at most
// once; disabled nodes transition to bound with their slots untouched.
//
// A transformation failure inside the reverse pipeline is a recorded
// outcome, not an error: the node ends up bound with Synchronized() false
// and Null storage and normalized slots. Every other failure propagates and
// leaves the node unbound.
//
// Bind must not be re-entered from its own hooks; the behavior of a
// reentrant call is undefined.
func (n *Node) Bind(submission domain.Value) error {
	if n.bound {
		return errors.Wrapf(domain.ErrAlreadyBound, "bind %q", n.Name())
	}

	if n.Disabled() {
		n.bound = true
		return nil
	}

	// Initializing here guarantees set-value hooks always fire before bind
	// hooks, including on the lazy first-bind path.
	if err := n.ensureInitialized(); err != nil {
		return err
	}

	// Scalars submit as text; Null stays distinct from the empty string so
	// "field absent" and "submitted empty" keep their separate meanings.
	if submission.Kind() == domain.KindOpaque {
		submission = domain.Stringify(submission)
	}

	n.errors = n.errors[:0]

	submission = n.dispatch(domain.StagePreBind, submission)

	if n.config.compound {
		var err error
		submission, err = n.bindChildren(submission)
		if err != nil {
			return err
		}
	}

	working := submission

	var storage, normalized domain.Value
	presentation := working
	synchronized := true

	err := func() error {
		if working.IsEmpty() {
			working = n.emptyValue(working)
			presentation = working
		}
		if len(n.children) > 0 && n.config.mapper != nil {
			merged, err := n.config.mapper.MapChildrenToData(n.children, working)
			if err != nil {
				return err
			}
			working = merged
			presentation = working
		}
		norm, err := n.reverseView(working)
		if err != nil {
			return err
		}
		norm = n.dispatch(domain.StageNormalizeOnBind, norm)
		stor, err := n.config.modelChain.ReverseTransform(norm)
		if err != nil {
			return err
		}
		pres, err := n.forwardView(norm)
		if err != nil {
			return err
		}
		storage, normalized, presentation = stor, norm, pres
		return nil
	}()
	if err != nil {
		if !domain.IsTransformationFailed(err) {
			return err
		}
		// The submitted value could not be converted back to storage
		// format. Record the desync instead of failing the bind.
		synchronized = false
		storage, normalized = domain.Null(), domain.Null()
	}

	n.storage = storage
	n.normalized = normalized
	n.presentation = presentation
	n.synchronized = synchronized
	n.bound = true

	n.dispatch(domain.StagePostBind, n.presentation)

	for _, v := range n.config.validators {
		v.Validate(n)
	}
	return nil
}

// bindChildren routes a compound submission to the children in insertion
// order, collects entries without a matching child into extra, and re-reads
// the node's own presentation slot as the working value: compound
// reconciliation is the mapper's job, not reassembled from the submission.
func (n *Node) bindChildren(submission domain.Value) (domain.Value, error) {
	var fields *domain.Structured
	switch {
	case submission.IsEmpty():
		fields = domain.NewStructured()
	case submission.Kind() == domain.KindStructured:
		fields = submission.Structured()
	default:
		return domain.Null(), errors.Wrapf(domain.ErrUnexpectedType,
			"compound %q expects structured submission, got %s", n.Name(), submission.Kind())
	}

	for _, child := range n.children {
		entry, _ := fields.Get(child.Name())
		if err := child.Bind(entry); err != nil {
			return domain.Null(), err
		}
	}

	extra := domain.NewStructured()
	fields.Range(func(key string, v domain.Value) bool {
		if _, owned := n.byName[key]; !owned {
			extra.Set(key, v)
		}
		return true
	})
	n.extra = extra

	return n.presentation, nil
}

// Extra returns the submission entries that matched no child, in submission
// order. It is populated by Bind on compound nodes.
func (n *Node) Extra() *domain.Structured { return n.extra }
