package meta

// Element definition names used by the containment rules. A dictionary may
// define more types; these are the ones the rules depend on.
const (
	ModuleElement             = "Module"
	ReportDesignElement       = "ReportDesign"
	LibraryElement            = "Library"
	ReportItemElement         = "ReportItem"
	ListingElement            = "Listing"
	TableElement              = "Table"
	ListElement               = "List"
	GroupElement              = "Group"
	RowElement                = "Row"
	CellElement               = "Cell"
	ColumnElement             = "Column"
	MasterPageElement         = "MasterPage"
	StyleElement              = "Style"
	ReportItemThemeElement    = "ReportItemTheme"
	TemplateElement           = "TemplateElement"
	TemplateReportItemElement = "TemplateReportItem"
	TemplateDataSetElement    = "TemplateDataSet"
)

// Slot identifiers.
const (
	BodySlot       = "body"
	ComponentSlot  = "components"
	PageSlot       = "pages"
	StyleSlot      = "styles"
	ThemeSlot      = "themes"
	DataSourceSlot = "dataSources"
	DataSetSlot    = "dataSets"
	HeaderSlot     = "header"
	DetailSlot     = "detail"
	FooterSlot     = "footer"
	GroupSlot      = "groups"
	ColumnSlot     = "columns"
	RowSlot        = "rows"
	CellSlot       = "cells"
	ContentSlot    = "content"
	PageHeaderSlot = "pageHeader"
	PageFooterSlot = "pageFooter"
)

// Property names.
const (
	IsSummaryTableProp = "isSummaryTable"
	DataSetProp        = "dataSet"
	ThemeTypeProp      = "type"
	ColSpanProp        = "colSpan"
	RepeatProp         = "repeat"
)

// IsTemplateName reports whether name is one of the template definitions.
// Inserting a template replaces a placeholder, so slot occupancy is unchanged.
func IsTemplateName(name string) bool {
	switch name {
	case TemplateElement, TemplateReportItemElement, TemplateDataSetElement:
		return true
	}
	return false
}
