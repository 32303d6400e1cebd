package domain

import "fmt"

// EntityRefKind names the single business document an EntityRef may point at.
type EntityRefKind string

const (
	RefNone            EntityRefKind = "NONE"
	RefSale            EntityRefKind = "SALE"
	RefPurchase        EntityRefKind = "PURCHASE"
	RefCapitalMovement EntityRefKind = "CAPITAL_MOVEMENT"
)

// EntityRef is a tagged union pointing at most one of a sale, a purchase or a
// capital movement. It replaces independently-nullable foreign keys so the
// mutual-exclusivity invariant is structural rather than convention-based.
type EntityRef struct {
	Kind EntityRefKind `json:"kind"`
	ID   string        `json:"id"`
}

// NoRef is the empty reference.
func NoRef() EntityRef {
	return EntityRef{Kind: RefNone}
}

// Validate checks the union invariant: the ID is set exactly when the kind is
// not NONE.
func (r EntityRef) Validate() error {
	switch r.Kind {
	case RefNone:
		if r.ID != "" {
			return fmt.Errorf("entity reference of kind NONE must not carry an id")
		}
		return nil
	case RefSale, RefPurchase, RefCapitalMovement:
		if r.ID == "" {
			return fmt.Errorf("entity reference of kind %s requires an id", r.Kind)
		}
		return nil
	default:
		return fmt.Errorf("unknown entity reference kind %q", r.Kind)
	}
}

// IsSet reports whether the reference points at a document.
func (r EntityRef) IsSet() bool {
	return r.Kind != RefNone && r.Kind != ""
}
