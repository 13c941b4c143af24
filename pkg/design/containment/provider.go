package containment

import (
	"strings"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
)

// Dictionary is the part of the metadata dictionary the validator queries.
// *meta.Dictionary implements it.
type Dictionary interface {
	Element(name string) *meta.ElementDefn
	PredefinedStyle(name string) *meta.PredefinedStyle
}

// Provider decides whether elements or element types may be placed in one
// container slot, the focus. It never mutates the tree.
type Provider struct {
	focus *model.ContainerContext
	dict  Dictionary
}

// NewProvider returns a provider for the given focus slot. A nil focus or
// dictionary is a programming error and panics.
func NewProvider(focus *model.ContainerContext, dict Dictionary) *Provider {
	if focus == nil || focus.Element() == nil {
		panic("containment: the focus of a provider must not be nil")
	}
	if dict == nil {
		panic("containment: the dictionary of a provider must not be nil")
	}
	return &Provider{focus: focus, dict: dict}
}

// Focus returns the slot this provider answers for.
func (p *Provider) Focus() *model.ContainerContext {
	return p.focus
}

// CanContainType reports whether an element of the named type could be
// inserted into the focus. Unknown types cannot.
func (p *Provider) CanContainType(module *model.Module, typeName string) bool {
	if typeName == "" {
		return false
	}
	return p.CanContainDefn(module, p.dict.Element(typeName))
}

// CanContain reports whether element may be inserted into the focus. A nil
// module is treated as writable.
func (p *Provider) CanContain(module *model.Module, element *model.Element) bool {
	if module != nil && module.IsReadOnly() {
		return false
	}
	return len(p.CheckContainmentContext(module, element)) == 0
}

// CanContainDefn is the fast check used before an element exists, e.g. for
// drag-and-drop previews. Once a listing or master page ancestor is found
// its content rules decide alone; the theme and self-containment guards of
// CheckContainmentContext do not apply to type-only queries.
func (p *Provider) CanContainDefn(module *model.Module, defn *meta.ElementDefn) bool {
	if defn == nil || (module != nil && module.IsReadOnly()) {
		return false
	}

	inRom := p.canContainInRom(defn)
	if !inRom {
		return false
	}

	focusElement := p.focus.Element()
	if focusElement.IsRootIncludedByModule() {
		return false
	}

	if !p.canContainTemplateDefn(module, defn) {
		return false
	}

	if isFrozen(focusElement) {
		return false
	}

	if p.isSummaryTableDetail(module) {
		return false
	}

	for ctx := p.focus; ctx != nil; ctx = ctx.Element().Container() {
		container := ctx.Element()
		if governsContent(container) {
			return len(checkContent(module, container, p.focus, candidate{defn: defn})) == 0
		}
	}

	return inRom
}

// CheckContainmentContext returns the reasons element may not be inserted
// into the focus. An empty result means it may. A nil element is accepted.
//
// Every structural guard rejects with a single generic violation. When a
// listing or master page ancestor governs the focus, its content rules
// produce the result instead.
func (p *Provider) CheckContainmentContext(module *model.Module, element *model.Element) designErrors.Violations {
	if element == nil {
		return nil
	}

	reject := func(msg string) designErrors.Violations {
		return designErrors.Violations{
			newContentError(designErrors.CodeInvalidContextContainment, p.focus, candidate{element: element}, msg),
		}
	}

	if !p.canContainInRom(element.Defn()) {
		return reject("slot does not accept the element or is already full")
	}

	if !p.canContainTemplateElement(module, element) {
		return reject("template elements are not allowed in libraries or library components")
	}

	focusElement := p.focus.Element()
	if focusElement.IsRootIncludedByModule() {
		return reject("container belongs to an included library")
	}

	if isFrozen(focusElement) {
		return reject("container is virtual or extends another element")
	}

	if p.isSummaryTableDetail(module) {
		return reject("summary tables have no detail rows")
	}

	if focusElement.Kind() == model.KindTheme {
		themeType := focusElement.StringProperty(focusElement.Root(), meta.ThemeTypeProp)
		style := p.dict.PredefinedStyle(element.Name)
		if strings.TrimSpace(themeType) == "" || style == nil || style.Type != themeType {
			return reject("style does not match a predefined style of the theme type")
		}
	}

	// An element may not become its own ancestor. The whole chain is checked
	// before any ancestor rules run so that a governing listing nested below
	// the element cannot hide the cycle.
	for ctx := p.focus; ctx != nil; ctx = ctx.Element().Container() {
		if ctx.Element() == element {
			return reject("element cannot contain itself")
		}
	}

	for ctx := p.focus; ctx != nil; ctx = ctx.Element().Container() {
		container := ctx.Element()
		if governsContent(container) {
			return checkContent(module, container, p.focus, candidate{element: element})
		}
	}

	return nil
}

// canContainInRom checks slot type compatibility and cardinality. Template
// types skip the cardinality check: placing one replaces a placeholder.
func (p *Provider) canContainInRom(defn *meta.ElementDefn) bool {
	if !p.focus.CanContainInRom(defn) {
		return false
	}

	if meta.IsTemplateName(defn.Name()) {
		return true
	}

	root := p.focus.Element().Root()
	if p.focus.ContentCount(root) > 0 && !p.focus.IsContainerMultipleCardinality() {
		return false
	}
	return true
}

// canContainTemplateElement applies the template scoping rule when element
// is a template or has a template anywhere below it.
func (p *Provider) canContainTemplateElement(module *model.Module, element *model.Element) bool {
	templateDefn := p.dict.Element(meta.TemplateElement)

	if element.IsTemplate() {
		return p.canContainTemplateDefn(module, templateDefn)
	}

	for it := model.NewContentIterator(module, element); it.HasNext(); {
		if it.Next().IsTemplate() {
			return p.canContainTemplateDefn(module, templateDefn)
		}
	}
	return true
}

// canContainTemplateDefn rejects template types anywhere under a library or
// a module's components slot, and in library modules.
func (p *Provider) canContainTemplateDefn(module *model.Module, defn *meta.ElementDefn) bool {
	if defn == nil || !defn.IsKindOf(p.dict.Element(meta.TemplateElement)) {
		return true
	}

	for ctx := p.focus; ctx != nil; ctx = ctx.Element().Container() {
		container := ctx.Element()
		if container.IsModuleRoot() && ctx.SlotID() == meta.ComponentSlot {
			return false
		}
		if container.Kind() == model.KindLibrary {
			return false
		}
	}

	if module != nil && module.IsLibrary() {
		return false
	}
	return true
}

// isSummaryTableDetail reports whether the focus is the detail slot of a
// summary table.
func (p *Provider) isSummaryTableDetail(module *model.Module) bool {
	focusElement := p.focus.Element()
	return focusElement.IsTable() &&
		focusElement.BoolProperty(module, meta.IsSummaryTableProp) &&
		p.focus.SlotID() == meta.DetailSlot
}

// isFrozen reports whether the structure of e may not change.
func isFrozen(e *model.Element) bool {
	return e.Virtual || e.ExtendsName != ""
}

// governsContent reports whether container supplies its own content rules
// for everything below it.
func governsContent(container *model.Element) bool {
	switch container.Kind() {
	case model.KindListing, model.KindMasterPage:
		return true
	}
	return false
}
