package model

// ContentIterator walks every descendant of an element depth-first, slot by
// slot in definition order. It is lazy and can be consumed once.
type ContentIterator struct {
	module *Module
	stack  []*frame
}

type frame struct {
	elements []*Element
	next     int
}

// NewContentIterator returns an iterator over the descendants of element.
// The element itself is not produced.
func NewContentIterator(module *Module, element *Element) *ContentIterator {
	it := &ContentIterator{module: module}
	if element != nil {
		it.push(element)
	}
	return it
}

func (it *ContentIterator) push(e *Element) {
	var children []*Element
	for _, id := range e.SlotIDs() {
		children = append(children, e.slots[id]...)
	}
	if len(children) > 0 {
		it.stack = append(it.stack, &frame{elements: children})
	}
}

// HasNext reports whether another descendant remains.
func (it *ContentIterator) HasNext() bool {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		if top.next < len(top.elements) {
			return true
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Next returns the next descendant, or nil when the walk is complete.
func (it *ContentIterator) Next() *Element {
	if !it.HasNext() {
		return nil
	}
	top := it.stack[len(it.stack)-1]
	e := top.elements[top.next]
	top.next++
	it.push(e)
	return e
}

// Descendants returns every descendant of element in iteration order.
func Descendants(module *Module, element *Element) []*Element {
	var result []*Element
	for it := NewContentIterator(module, element); it.HasNext(); {
		result = append(result, it.Next())
	}
	return result
}
