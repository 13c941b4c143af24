package containment

import (
	"fmt"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
)

// candidate is the thing offered to a slot: a concrete element, or only its
// type when no element exists yet.
type candidate struct {
	element *model.Element
	defn    *meta.ElementDefn
}

func (c candidate) definition() *meta.ElementDefn {
	if c.element != nil {
		return c.element.Defn()
	}
	return c.defn
}

// checkContent applies the content rules of container, the nearest listing
// or master page above focus, to a candidate for focus.
func checkContent(module *model.Module, container *model.Element, focus *model.ContainerContext, c candidate) designErrors.Violations {
	if v := checkSlotContent(focus, c); len(v) > 0 {
		return v
	}

	switch container.Kind() {
	case model.KindListing:
		return checkListingContent(module, container, focus, c)
	case model.KindMasterPage:
		return checkMasterPageContent(module, focus, c)
	}
	return nil
}

// checkSlotContent applies the rules every container shares: type and
// cardinality of the focus slot.
func checkSlotContent(focus *model.ContainerContext, c candidate) designErrors.Violations {
	defn := c.definition()
	if !focus.CanContainInRom(defn) {
		return designErrors.Violations{newContentError(designErrors.CodeWrongType, focus, c, "")}
	}
	if defn != nil && meta.IsTemplateName(defn.Name()) {
		return nil
	}
	if !focus.IsContainerMultipleCardinality() && focus.ContentCount(focus.Element().Root()) > 0 {
		return designErrors.Violations{newContentError(designErrors.CodeSlotIsFull, focus, c, "")}
	}
	return nil
}

// checkListingContent enforces positional rules of tables and lists: rows
// must fit the table's columns and group names must be unique.
func checkListingContent(module *model.Module, listing *model.Element, focus *model.ContainerContext, c candidate) designErrors.Violations {
	defn := c.definition()

	if listing.IsTable() && c.element != nil {
		columns := columnCount(module, listing)
		if columns > 0 {
			var span int
			switch {
			case defn.IsKindOfName(meta.RowElement) && isTableBand(listing, focus):
				span = rowSpan(module, c.element)
			case defn.IsKindOfName(meta.CellElement) && focus.SlotID() == meta.CellSlot &&
				focus.Element().Container() != nil && isTableBand(listing, focus.Element().Container()):
				span = rowSpan(module, focus.Element()) + cellSpan(module, c.element)
			}
			if span > columns {
				return designErrors.Violations{newContentError(designErrors.CodeRowCellOverflow, focus, c,
					fmt.Sprintf("row spans %d cells but the table has %d columns", span, columns))}
			}
		}
	}

	if defn.IsKindOfName(meta.GroupElement) && focus.Element() == listing && focus.SlotID() == meta.GroupSlot &&
		c.element != nil && c.element.Name != "" {
		for _, g := range listing.Contents(meta.GroupSlot) {
			if g != c.element && g.Name == c.element.Name {
				return designErrors.Violations{newContentError(designErrors.CodeDuplicateGroupName, focus, c,
					fmt.Sprintf("group %q already exists", g.Name))}
			}
		}
	}

	return nil
}

// checkMasterPageContent rejects data-bound content: master pages are laid
// out without a data set.
func checkMasterPageContent(module *model.Module, focus *model.ContainerContext, c candidate) designErrors.Violations {
	reject := designErrors.Violations{newContentError(designErrors.CodeDataBoundInMasterPage, focus, c, "")}

	if c.element == nil {
		if c.defn.IsKindOfName(meta.ListingElement) {
			return reject
		}
		return nil
	}

	if isDataBound(module, c.element) {
		return reject
	}
	for it := model.NewContentIterator(module, c.element); it.HasNext(); {
		if isDataBound(module, it.Next()) {
			return reject
		}
	}
	return nil
}

func isDataBound(module *model.Module, e *model.Element) bool {
	return e.Kind() == model.KindListing || e.StringProperty(module, meta.DataSetProp) != ""
}

// isTableBand reports whether ctx is a row band of table: its header,
// detail or footer, or the header or footer of one of its groups.
func isTableBand(table *model.Element, ctx *model.ContainerContext) bool {
	switch ctx.SlotID() {
	case meta.HeaderSlot, meta.DetailSlot, meta.FooterSlot:
	default:
		return false
	}

	owner := ctx.Element()
	if owner == table {
		return true
	}
	return owner.Defn().IsKindOfName(meta.GroupElement) && owner.ContainerElement() == table
}

// columnCount sums the repeat counts of the table's columns.
func columnCount(module *model.Module, table *model.Element) int {
	var n int
	for _, col := range table.Contents(meta.ColumnSlot) {
		n += max(col.IntProperty(module, meta.RepeatProp, 1), 1)
	}
	return n
}

// rowSpan sums the column spans of the row's cells.
func rowSpan(module *model.Module, row *model.Element) int {
	var n int
	for _, cell := range row.Contents(meta.CellSlot) {
		n += cellSpan(module, cell)
	}
	return n
}

func cellSpan(module *model.Module, cell *model.Element) int {
	return max(cell.IntProperty(module, meta.ColSpanProp, 1), 1)
}

// newContentError describes a refused candidate for focus.
func newContentError(code designErrors.Code, focus *model.ContainerContext, c candidate, msg string) *designErrors.ContentError {
	container := focus.Element()
	e := &designErrors.ContentError{
		Code:          code,
		ContainerID:   container.ID,
		ContainerName: container.Name,
		ContainerType: container.TypeName(),
		Slot:          focus.SlotID(),
		Message:       msg,
	}

	switch {
	case c.element != nil:
		e.ElementID = c.element.ID
		e.ElementName = c.element.Name
		e.ElementType = c.element.TypeName()
	case c.defn != nil:
		e.ElementType = c.defn.Name()
	}
	return e
}
