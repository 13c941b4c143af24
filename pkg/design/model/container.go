package model

import (
	"fmt"

	"mercator-hq/folio/pkg/design/meta"
)

// ContainerContext identifies one slot of one element.
type ContainerContext struct {
	element *Element
	slotID  string
}

// NewContainerContext returns the context for a slot of element.
func NewContainerContext(element *Element, slotID string) *ContainerContext {
	return &ContainerContext{element: element, slotID: slotID}
}

// Element returns the element owning the slot.
func (c *ContainerContext) Element() *Element {
	return c.element
}

// SlotID returns the slot identifier.
func (c *ContainerContext) SlotID() string {
	return c.slotID
}

// SlotDefn returns the slot definition, or nil if the owner's type has no
// such slot.
func (c *ContainerContext) SlotDefn() *meta.SlotDefn {
	if c.element == nil || c.element.defn == nil {
		return nil
	}
	return c.element.defn.Slot(c.slotID)
}

// CanContainInRom reports whether the slot accepts the given type according
// to the dictionary.
func (c *ContainerContext) CanContainInRom(defn *meta.ElementDefn) bool {
	return c.SlotDefn().CanContain(defn)
}

// IsContainerMultipleCardinality reports whether the slot accepts more than
// one element.
func (c *ContainerContext) IsContainerMultipleCardinality() bool {
	slot := c.SlotDefn()
	return slot != nil && slot.Multiple
}

// ContentCount returns the number of elements in the slot.
func (c *ContainerContext) ContentCount(module *Module) int {
	return len(c.element.slots[c.slotID])
}

// Contents returns a copy of the slot contents.
func (c *ContainerContext) Contents() []*Element {
	return c.element.Contents(c.slotID)
}

// IndexOf returns the position of child in the slot, or -1.
func (c *ContainerContext) IndexOf(child *Element) int {
	for i, e := range c.element.slots[c.slotID] {
		if e == child {
			return i
		}
	}
	return -1
}

// Equal reports whether both contexts name the same slot of the same element.
func (c *ContainerContext) Equal(other *ContainerContext) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.element == other.element && c.slotID == other.slotID
}

// Add inserts child at pos (appending when pos is negative or past the end)
// and sets its container link. It performs no containment validation; the
// caller is expected to have checked the insertion.
func (c *ContainerContext) Add(child *Element, pos int) error {
	if child == nil {
		return fmt.Errorf("cannot add nil element to slot %q", c.slotID)
	}
	if child.container != nil {
		return fmt.Errorf("element %s is already contained in slot %q of %s",
			child, child.container.slotID, child.container.element)
	}
	if child.module != nil {
		return fmt.Errorf("module root %s cannot be added to a slot", child)
	}
	if c.SlotDefn() == nil {
		return fmt.Errorf("%s has no slot %q", c.element, c.slotID)
	}

	contents := c.element.slots[c.slotID]
	if pos < 0 || pos > len(contents) {
		pos = len(contents)
	}
	contents = append(contents, nil)
	copy(contents[pos+1:], contents[pos:])
	contents[pos] = child
	c.element.slots[c.slotID] = contents

	child.container = &ContainerContext{element: c.element, slotID: c.slotID}
	return nil
}

// Remove detaches child from the slot and clears its container link.
func (c *ContainerContext) Remove(child *Element) error {
	idx := c.IndexOf(child)
	if idx < 0 {
		return fmt.Errorf("element %s is not in slot %q of %s", child, c.slotID, c.element)
	}

	contents := c.element.slots[c.slotID]
	c.element.slots[c.slotID] = append(contents[:idx], contents[idx+1:]...)
	child.container = nil
	return nil
}

// String returns "owner.slot".
func (c *ContainerContext) String() string {
	return fmt.Sprintf("%s.%s", c.element, c.slotID)
}
