package hazard

// Category is the closed hazard taxonomy. Categories are curated metadata:
// they are copied from the inventory onto results and never auto-inferred
// from corpus evidence.
type Category string

const (
	CategoryKernelClash      Category = "KERNEL_CLASH"
	CategoryEnergyConflict   Category = "ENERGY_CONFLICT"
	CategoryFlowViolation    Category = "FLOW_VIOLATION"
	CategoryOrderInversion   Category = "ORDER_INVERSION"
	CategoryResourceConflict Category = "RESOURCE_CONFLICT"
)

// ValidCategories defines the closed category enum.
var ValidCategories = map[Category]bool{
	CategoryKernelClash:      true,
	CategoryEnergyConflict:   true,
	CategoryFlowViolation:    true,
	CategoryOrderInversion:   true,
	CategoryResourceConflict: true,
}

// Declared is one entry of the curated forbidden-transition inventory:
// the ordered token pair (source, target) is asserted never to occur in
// sequence. The inventory is versioned independently of corpus data.
type Declared struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Category Category `json:"category"`
}

// Status classifies a declared transition after reconciliation. Every
// declared transition lands in exactly one status.
type Status string

const (
	StatusConfirmedAbsent Status = "CONFIRMED_ABSENT"
	StatusViolated        Status = "VIOLATED"
	StatusUntestable      Status = "UNTESTABLE"
)

// Finding is the reconciled state of one declared transition.
type Finding struct {
	Declared Declared `json:"declared"`
	Status   Status   `json:"status"`

	// Forward and Reverse are corpus-observed adjacency counts for the
	// declared direction and its inverse.
	Forward int `json:"forward"`
	Reverse int `json:"reverse"`

	// Asymmetric is true strictly when one direction is zero and the other
	// positive.
	Asymmetric bool `json:"asymmetric"`

	// RedundantWithReverse marks a declaration whose inverse pair is also
	// declared in the inventory.
	RedundantWithReverse bool `json:"redundant_with_reverse"`

	// KernelAdjacent is true when either endpoint is a kernel token, or any
	// observed occurrence of the pair sits within the configured token
	// distance of one.
	KernelAdjacent bool `json:"kernel_adjacent"`

	// Positions lists stream indexes of forward occurrences, for the drift
	// diff. Empty unless Status is VIOLATED.
	Positions []int `json:"positions,omitempty"`
}
