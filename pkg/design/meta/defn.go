package meta

// ElementDefn describes one element type of the dictionary. Definitions form
// a single-inheritance hierarchy through Extends.
type ElementDefn struct {
	name     string
	extends  string
	abstract bool
	parent   *ElementDefn
	slots    []*SlotDefn
	props    map[string]any
}

// SlotDefn describes a named child position of an element type.
type SlotDefn struct {
	ID       string
	Multiple bool

	// ContentTypes lists the definition names accepted by the slot. A
	// candidate is accepted when it is a kind of any of them.
	ContentTypes []string

	contents []*ElementDefn
}

// PredefinedStyle is a style name the dictionary reserves for one kind of
// report item (e.g. "table-header" for tables).
type PredefinedStyle struct {
	Name string
	Type string
}

// Name returns the definition name.
func (d *ElementDefn) Name() string {
	return d.name
}

// Extends returns the parent definition name, or "" for a root definition.
func (d *ElementDefn) Extends() string {
	return d.extends
}

// Parent returns the parent definition.
func (d *ElementDefn) Parent() *ElementDefn {
	return d.parent
}

// IsAbstract reports whether elements of this exact type may not be created.
func (d *ElementDefn) IsAbstract() bool {
	return d.abstract
}

// IsKindOf reports whether d is other or derives from it.
func (d *ElementDefn) IsKindOf(other *ElementDefn) bool {
	if d == nil || other == nil {
		return false
	}
	for cur := d; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// IsKindOfName is IsKindOf by definition name.
func (d *ElementDefn) IsKindOfName(name string) bool {
	if d == nil {
		return false
	}
	for cur := d; cur != nil; cur = cur.parent {
		if cur.name == name {
			return true
		}
	}
	return false
}

// Slot returns the slot with the given ID, looking through parent
// definitions. It returns nil if the type has no such slot.
func (d *ElementDefn) Slot(id string) *SlotDefn {
	for cur := d; cur != nil; cur = cur.parent {
		for _, s := range cur.slots {
			if s.ID == id {
				return s
			}
		}
	}
	return nil
}

// Slots returns all slots of the type: its own slots first, then inherited
// slots it does not redefine.
func (d *ElementDefn) Slots() []*SlotDefn {
	var result []*SlotDefn
	seen := make(map[string]bool)
	for cur := d; cur != nil; cur = cur.parent {
		for _, s := range cur.slots {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			result = append(result, s)
		}
	}
	return result
}

// PropertyDefault returns the default value of a property, looking through
// parent definitions.
func (d *ElementDefn) PropertyDefault(name string) (any, bool) {
	for cur := d; cur != nil; cur = cur.parent {
		if v, ok := cur.props[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// CanContain reports whether the slot accepts elements of type defn.
func (s *SlotDefn) CanContain(defn *ElementDefn) bool {
	if s == nil || defn == nil {
		return false
	}
	for _, c := range s.contents {
		if defn.IsKindOf(c) {
			return true
		}
	}
	return false
}
