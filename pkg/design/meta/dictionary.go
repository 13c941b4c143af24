package meta

import "sort"

// Dictionary is the read-only registry of element definitions and predefined
// styles. It is built once by Load, LoadBytes or Builtin and never mutated
// afterwards, so it can be shared between goroutines.
type Dictionary struct {
	elements map[string]*ElementDefn
	order    []string
	styles   map[string]*PredefinedStyle
	source   string
}

// Element resolves a definition by name. It returns nil when the name is
// unknown.
func (d *Dictionary) Element(name string) *ElementDefn {
	if d == nil {
		return nil
	}
	return d.elements[name]
}

// HasElement returns true if the dictionary defines the named type.
func (d *Dictionary) HasElement(name string) bool {
	return d.Element(name) != nil
}

// IsKindOf reports whether a is b or derives from it.
func (d *Dictionary) IsKindOf(a, b *ElementDefn) bool {
	return a.IsKindOf(b)
}

// PredefinedStyle resolves a predefined style by name. It returns nil when
// the name is not reserved.
func (d *Dictionary) PredefinedStyle(name string) *PredefinedStyle {
	if d == nil {
		return nil
	}
	return d.styles[name]
}

// Elements returns all definitions in declaration order.
func (d *Dictionary) Elements() []*ElementDefn {
	result := make([]*ElementDefn, 0, len(d.order))
	for _, name := range d.order {
		result = append(result, d.elements[name])
	}
	return result
}

// ElementNames returns all definition names in declaration order.
func (d *Dictionary) ElementNames() []string {
	return append([]string(nil), d.order...)
}

// Styles returns all predefined styles sorted by name.
func (d *Dictionary) Styles() []*PredefinedStyle {
	result := make([]*PredefinedStyle, 0, len(d.styles))
	for _, s := range d.styles {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Source returns the path the dictionary was loaded from, or "builtin".
func (d *Dictionary) Source() string {
	return d.source
}
