package model

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
)

// Element is a node of the design tree. Elements live in slots of their
// container; the container link is a back-reference, the tree owns them.
type Element struct {
	// ID uniquely identifies the element within its module.
	ID string

	// Name is the user-visible element name (may be empty).
	Name string

	// ExtendsName names the element this one was derived from, qualified
	// with a library namespace when it comes from an included library.
	// Extended elements are structurally frozen.
	ExtendsName string

	// Virtual marks elements generated through an extension relationship.
	// Virtual elements are structurally frozen.
	Virtual bool

	// Location is where the element was declared, when loaded from a file.
	Location designErrors.Location

	defn      *meta.ElementDefn
	kind      Kind
	container *ContainerContext
	slots     map[string][]*Element
	props     map[string]any
	module    *Module
}

// NewElement creates a detached element of the given type with a fresh ID.
func NewElement(defn *meta.ElementDefn, name string) *Element {
	return &Element{
		ID:    uuid.NewString(),
		Name:  name,
		defn:  defn,
		kind:  KindOf(defn),
		slots: make(map[string][]*Element),
		props: make(map[string]any),
	}
}

// Defn returns the element definition.
func (e *Element) Defn() *meta.ElementDefn {
	return e.defn
}

// TypeName returns the definition name, or "" for an untyped element.
func (e *Element) TypeName() string {
	if e.defn == nil {
		return ""
	}
	return e.defn.Name()
}

// Kind returns the containment kind of the element.
func (e *Element) Kind() Kind {
	return e.kind
}

// IsTable reports whether the element is a table.
func (e *Element) IsTable() bool {
	return e.defn.IsKindOfName(meta.TableElement)
}

// IsTemplate reports whether the element is a template placeholder.
func (e *Element) IsTemplate() bool {
	return e.kind == KindTemplate
}

// IsModuleRoot reports whether the element is the root of a module.
func (e *Element) IsModuleRoot() bool {
	return e.kind == KindModule || e.kind == KindLibrary
}

// Container returns the slot holding this element, or nil for a root or
// detached element.
func (e *Element) Container() *ContainerContext {
	return e.container
}

// ContainerElement returns the element holding this one, or nil.
func (e *Element) ContainerElement() *Element {
	if e.container == nil {
		return nil
	}
	return e.container.element
}

// Contents returns a copy of the elements in the given slot.
func (e *Element) Contents(slotID string) []*Element {
	return append([]*Element(nil), e.slots[slotID]...)
}

// Slot returns the container context for one of the element's slots.
func (e *Element) Slot(slotID string) *ContainerContext {
	return &ContainerContext{element: e, slotID: slotID}
}

// SlotIDs returns the IDs of the slots defined for the element's type, in
// definition order.
func (e *Element) SlotIDs() []string {
	if e.defn == nil {
		return nil
	}
	slots := e.defn.Slots()
	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return ids
}

// Root returns the module owning the tree the element is attached to, or
// nil for a detached element.
func (e *Element) Root() *Module {
	cur := e
	for cur.container != nil {
		cur = cur.container.element
	}
	return cur.module
}

// IsRootIncludedByModule reports whether the element belongs to a library
// that another module included. Included content is read-only.
func (e *Element) IsRootIncludedByModule() bool {
	root := e.Root()
	return root != nil && root.Host() != nil
}

// LocalProperty returns a property set directly on the element.
func (e *Element) LocalProperty(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// LocalProperties returns a copy of the properties set on the element.
func (e *Element) LocalProperties() map[string]any {
	out := make(map[string]any, len(e.props))
	for k, v := range e.props {
		out[k] = v
	}
	return out
}

// SetProperty sets a local property value.
func (e *Element) SetProperty(name string, value any) {
	e.props[name] = value
}

// Property resolves a property value: the local value, then the value of the
// element it extends (resolved through module), then the definition default.
func (e *Element) Property(module *Module, name string) (any, bool) {
	seen := make(map[*Element]bool)
	for cur := e; cur != nil && !seen[cur]; {
		seen[cur] = true
		if v, ok := cur.props[name]; ok {
			return v, true
		}
		if cur.ExtendsName == "" || module == nil {
			break
		}
		cur = module.ResolveExtends(cur.ExtendsName)
	}
	return e.defn.PropertyDefault(name)
}

// BoolProperty resolves a boolean property. Unset or non-boolean values are
// false.
func (e *Element) BoolProperty(module *Module, name string) bool {
	v, ok := e.Property(module, name)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	}
	return false
}

// StringProperty resolves a string property. Unset values are "".
func (e *Element) StringProperty(module *Module, name string) string {
	v, ok := e.Property(module, name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IntProperty resolves an integer property, falling back to def when the
// property is unset or not numeric.
func (e *Element) IntProperty(module *Module, name string, def int) int {
	v, ok := e.Property(module, name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// String returns a short description used in logs and messages.
func (e *Element) String() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q", e.TypeName(), e.Name)
	}
	return fmt.Sprintf("%s (%s)", e.TypeName(), e.ID)
}
