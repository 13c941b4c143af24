package model

import "mercator-hq/folio/pkg/design/meta"

// Kind classifies elements by the containment behavior they carry.
type Kind int

const (
	// KindGeneric covers every element without special containment rules.
	KindGeneric Kind = iota
	// KindListing covers data-bound listings (tables, lists).
	KindListing
	// KindMasterPage covers page layouts.
	KindMasterPage
	// KindTheme covers report item themes.
	KindTheme
	// KindTemplate covers template placeholders.
	KindTemplate
	// KindModule covers report design roots.
	KindModule
	// KindLibrary covers library roots.
	KindLibrary
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindMasterPage:
		return "master-page"
	case KindTheme:
		return "theme"
	case KindTemplate:
		return "template"
	case KindModule:
		return "module"
	case KindLibrary:
		return "library"
	default:
		return "generic"
	}
}

// KindOf derives the kind of a definition from its ancestry.
func KindOf(defn *meta.ElementDefn) Kind {
	switch {
	case defn == nil:
		return KindGeneric
	case defn.IsKindOfName(meta.LibraryElement):
		return KindLibrary
	case defn.IsKindOfName(meta.ModuleElement):
		return KindModule
	case defn.IsKindOfName(meta.ListingElement):
		return KindListing
	case defn.IsKindOfName(meta.MasterPageElement):
		return KindMasterPage
	case defn.IsKindOfName(meta.ReportItemThemeElement):
		return KindTheme
	case defn.IsKindOfName(meta.TemplateElement):
		return KindTemplate
	default:
		return KindGeneric
	}
}
