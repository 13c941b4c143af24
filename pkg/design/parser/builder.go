package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
)

// builder constructs the design tree from decoded YAML and accumulates
// structural errors with their source locations.
type builder struct {
	sourcePath string
	dict       *meta.Dictionary
	errors     *designErrors.ErrorList
	ids        map[string]designErrors.Location
}

func newBuilder(sourcePath string, dict *meta.Dictionary) *builder {
	return &builder{
		sourcePath: sourcePath,
		dict:       dict,
		errors:     designErrors.NewErrorList(),
		ids:        make(map[string]designErrors.Location),
	}
}

func (b *builder) location(node *yaml.Node) designErrors.Location {
	if node == nil {
		return designErrors.Location{File: b.sourcePath, Line: 1, Column: 1}
	}
	return designErrors.Location{File: b.sourcePath, Line: node.Line, Column: node.Column}
}

// buildModule creates the module and its root element, then fills the root
// slots. It returns nil when the document kind is unusable.
func (b *builder) buildModule(doc *yamlDocument, root *yaml.Node) *model.Module {
	kindLoc := b.location(valueNode(root, "kind"))

	var (
		module *model.Module
		err    error
	)
	switch doc.Kind {
	case kindReport:
		module, err = model.NewReportDesign(b.dict, doc.Name)
	case kindLibrary:
		if doc.Namespace == "" {
			b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
				"Library missing required field 'namespace'", kindLoc,
				designErrors.SuggestMissingField("namespace", "corp"))
		}
		module, err = model.NewLibrary(b.dict, doc.Name, doc.Namespace)
	case "":
		b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
			"Document missing required field 'kind'", kindLoc,
			designErrors.SuggestMissingField("kind", kindReport))
		return nil
	default:
		b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
			fmt.Sprintf("Unknown document kind %q", doc.Kind), kindLoc,
			designErrors.SuggestName(doc.Kind, []string{kindReport, kindLibrary}))
		return nil
	}
	if err != nil {
		b.errors.AddError(designErrors.ErrorTypeStructural, err.Error(), kindLoc)
		return nil
	}

	module.SetFileName(b.sourcePath)
	module.SetReadOnly(doc.ReadOnly)
	rootElement := module.Root()
	rootElement.Location = b.location(docNode(root))
	if doc.ID != "" {
		rootElement.ID = doc.ID
	}
	b.ids[rootElement.ID] = rootElement.Location

	b.buildSlots(rootElement, doc.Slots)
	return module
}

// buildSlots fills the slots of parent from a "slot: [elements]" mapping.
func (b *builder) buildSlots(parent *model.Element, node *yaml.Node) {
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		b.errors.AddError(designErrors.ErrorTypeStructural,
			fmt.Sprintf("Slots of %s must be a mapping of slot names to element lists", parent),
			b.location(node))
		return
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, listNode := node.Content[i], node.Content[i+1]
		slotID := keyNode.Value

		ctx := parent.Slot(slotID)
		if ctx.SlotDefn() == nil {
			b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
				fmt.Sprintf("%s has no slot %q", parent.TypeName(), slotID),
				b.location(keyNode),
				designErrors.SuggestName(slotID, parent.SlotIDs()))
			continue
		}

		if listNode.Kind != yaml.SequenceNode {
			b.errors.AddError(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Slot %q must contain a list of elements", slotID),
				b.location(listNode))
			continue
		}

		for _, elementNode := range listNode.Content {
			child := b.buildElement(elementNode)
			if child == nil {
				continue
			}
			if !ctx.CanContainInRom(child.Defn()) {
				b.errors.AddError(designErrors.ErrorTypeStructural,
					fmt.Sprintf("Slot %q of %s does not accept %s", slotID, parent.TypeName(), child.TypeName()),
					child.Location)
				continue
			}
			if err := ctx.Add(child, -1); err != nil {
				b.errors.AddError(designErrors.ErrorTypeStructural, err.Error(), child.Location)
			}
		}
	}
}

// buildElement creates one element and, recursively, its contents.
func (b *builder) buildElement(node *yaml.Node) *model.Element {
	loc := b.location(node)

	var ye yamlElement
	if err := node.Decode(&ye); err != nil {
		b.errors.AddError(designErrors.ErrorTypeSyntax, fmt.Sprintf("Invalid element: %v", err), loc)
		return nil
	}
	ye.Slots = mappingValue(node, "slots")

	if ye.Type == "" {
		b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
			"Element missing required field 'type'", loc,
			designErrors.SuggestMissingField("type", "Label"))
		return nil
	}

	defn := b.dict.Element(ye.Type)
	if defn == nil {
		b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
			fmt.Sprintf("Unknown element type %q", ye.Type), loc,
			designErrors.SuggestName(ye.Type, b.dict.ElementNames()))
		return nil
	}
	if defn.IsAbstract() {
		b.errors.AddError(designErrors.ErrorTypeStructural,
			fmt.Sprintf("Element type %q is abstract and cannot be instantiated", ye.Type), loc)
		return nil
	}

	e := model.NewElement(defn, ye.Name)
	e.Location = loc
	e.ExtendsName = ye.Extends
	e.Virtual = ye.Virtual
	if ye.ID != "" {
		e.ID = ye.ID
	}
	if prev, dup := b.ids[e.ID]; dup {
		b.errors.AddError(designErrors.ErrorTypeStructural,
			fmt.Sprintf("Duplicate element id %q (first declared at %s)", e.ID, prev), loc)
	} else {
		b.ids[e.ID] = loc
	}

	for name, value := range ye.Properties {
		e.SetProperty(name, value)
	}

	b.buildSlots(e, ye.Slots)
	return e
}

// checkExtends reports extends references that resolve to nothing. It runs
// after includes are attached so namespaced references can resolve.
func (b *builder) checkExtends(module *model.Module) {
	for _, e := range model.Descendants(module, module.Root()) {
		if e.ExtendsName == "" || module.ResolveExtends(e.ExtendsName) != nil {
			continue
		}

		suggestion := ""
		if ns, _, ok := strings.Cut(e.ExtendsName, "."); ok && module.Library(ns) == nil {
			var known []string
			for _, lib := range module.Libraries() {
				known = append(known, lib.Namespace())
			}
			if s := designErrors.SuggestName(ns, known); s != "" {
				suggestion = s
			} else {
				suggestion = fmt.Sprintf("Include the library declaring namespace %q", ns)
			}
		}
		b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
			fmt.Sprintf("%s extends unknown element %q", e, e.ExtendsName), e.Location, suggestion)
	}
}

// addNested merges errors from an included document.
func (b *builder) addNested(err error) {
	switch e := err.(type) {
	case *designErrors.ErrorList:
		for _, nested := range e.Errors {
			b.errors.Add(nested)
		}
	case *designErrors.Error:
		b.errors.Add(e)
	default:
		b.errors.AddError(designErrors.ErrorTypeIO, err.Error(), b.location(nil))
	}
}

// docNode returns the top-level mapping of a document node.
func docNode(root *yaml.Node) *yaml.Node {
	if root != nil && root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return root.Content[0]
	}
	return root
}

// valueNode returns the value node for key in the document mapping, or the
// mapping itself when the key is absent.
func valueNode(root *yaml.Node, key string) *yaml.Node {
	m := docNode(root)
	if m == nil || m.Kind != yaml.MappingNode {
		return m
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return m
}
