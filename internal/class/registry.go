package class

import (
	"fmt"
	"sort"

	"github.com/vellumlabs/vellum/internal/morph"
	"github.com/vellumlabs/vellum/internal/token"
)

// Role tags a class with its behavioral position in the instruction
// taxonomy. Closed enum; configuration naming anything else is rejected.
type Role string

const (
	RoleCoreControl      Role = "CORE_CONTROL"
	RoleEnergyOperator   Role = "ENERGY_OPERATOR"
	RoleFlowOperator     Role = "FLOW_OPERATOR"
	RoleFrequentOperator Role = "FREQUENT_OPERATOR"
	RoleAuxiliary        Role = "AUXILIARY"
	RoleInfrastructure   Role = "INFRASTRUCTURE"
)

// ValidRoles defines the closed role enum.
var ValidRoles = map[Role]bool{
	RoleCoreControl:      true,
	RoleEnergyOperator:   true,
	RoleFlowOperator:     true,
	RoleFrequentOperator: true,
	RoleAuxiliary:        true,
	RoleInfrastructure:   true,
}

// Class is one instruction class of the frozen taxonomy.
type Class struct {
	ID        string   `json:"id"`
	Role      Role     `json:"role"`
	Members   []string `json:"members"` // member token strings, sorted
	Hazardous bool     `json:"hazardous"`
}

// UnknownClassID tags tokens with no class mapping. It is never a real
// class: it participates in counts but never in class-level aggregates.
const UnknownClassID = "UNKNOWN"

// Assignment is the classification of one token.
type Assignment struct {
	Token   string `json:"token"`
	ClassID string `json:"class_id"`
	Role    Role   `json:"role,omitempty"`
	Unknown bool   `json:"unknown,omitempty"`
}

// Registry is the frozen class lookup table for one run.
type Registry struct {
	classes []Class
	byToken map[string]int // member token -> index into classes
	byID    map[string]int
}

// NewRegistry freezes a class table. Every class must be non-empty, carry a
// valid role, and no token may belong to two classes.
func NewRegistry(classes []Class) (*Registry, error) {
	r := &Registry{
		byToken: make(map[string]int),
		byID:    make(map[string]int),
	}
	sorted := make([]Class, len(classes))
	copy(sorted, classes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for i, c := range sorted {
		if c.ID == "" || c.ID == UnknownClassID {
			return nil, fmt.Errorf("class %d: id %q is reserved or empty", i, c.ID)
		}
		if !ValidRoles[c.Role] {
			return nil, fmt.Errorf("class %s: unknown role %q", c.ID, c.Role)
		}
		if len(c.Members) == 0 {
			return nil, fmt.Errorf("class %s: no member tokens (empty classes are invalid)", c.ID)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("class %s: duplicate id", c.ID)
		}
		members := make([]string, 0, len(c.Members))
		for _, m := range c.Members {
			m = token.Normalize(m)
			if prev, dup := r.byToken[m]; dup {
				return nil, fmt.Errorf("token %q: belongs to both %s and %s", m, sorted[prev].ID, c.ID)
			}
			r.byToken[m] = i
			members = append(members, m)
		}
		sort.Strings(members)
		sorted[i].Members = members
		r.byID[c.ID] = i
	}
	r.classes = sorted
	return r, nil
}

// Classes returns the frozen classes in stable ID order.
func (r *Registry) Classes() []Class {
	out := make([]Class, len(r.classes))
	copy(out, r.classes)
	return out
}

// Len returns the class count.
func (r *Registry) Len() int { return len(r.classes) }

// Class returns the class with the given ID.
func (r *Registry) Class(id string) (Class, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Class{}, false
	}
	return r.classes[i], true
}

// Assign classifies a decomposed token. Unresolved decompositions and
// tokens absent from the table come back Unknown; the caller accumulates
// those into the run diagnostics instead of dropping them.
func (r *Registry) Assign(d morph.Decomposition) Assignment {
	if !d.Resolved() {
		return Assignment{Token: d.Token, ClassID: UnknownClassID, Unknown: true}
	}
	return r.AssignText(d.Token)
}

// AssignText classifies a raw token string, including atomic (middle-less)
// tokens that never reach the decomposer.
func (r *Registry) AssignText(text string) Assignment {
	text = token.Normalize(text)
	i, ok := r.byToken[text]
	if !ok {
		return Assignment{Token: text, ClassID: UnknownClassID, Unknown: true}
	}
	return Assignment{Token: text, ClassID: r.classes[i].ID, Role: r.classes[i].Role}
}
