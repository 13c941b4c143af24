package meta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	designErrors "mercator-hq/folio/pkg/design/errors"
)

// yamlDictionary is the document layout of a dictionary file.
type yamlDictionary struct {
	Elements []yaml.Node `yaml:"elements"`
	Styles   []yaml.Node `yaml:"styles"`
}

type yamlElement struct {
	Name       string         `yaml:"name"`
	Extends    string         `yaml:"extends"`
	Abstract   bool           `yaml:"abstract"`
	Properties map[string]any `yaml:"properties"`
	Slots      []yamlSlot     `yaml:"slots"`
}

type yamlSlot struct {
	ID       string   `yaml:"id"`
	Multiple bool     `yaml:"multiple"`
	Content  []string `yaml:"content"`
}

type yamlStyle struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Load reads a dictionary from a YAML file.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &designErrors.Error{
			Type:     designErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read dictionary: %v", err),
			Location: designErrors.Location{File: path},
		}
	}
	return LoadBytes(data, path)
}

// LoadBytes parses a dictionary from YAML. sourcePath is used for error
// locations only.
func LoadBytes(data []byte, sourcePath string) (*Dictionary, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &designErrors.Error{
			Type:       designErrors.ErrorTypeSyntax,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Location:   designErrors.Location{File: sourcePath, Line: 1},
			Suggestion: "Check YAML syntax (indentation, colons, quotes)",
		}
	}

	var doc yamlDictionary
	if err := root.Decode(&doc); err != nil {
		return nil, &designErrors.Error{
			Type:     designErrors.ErrorTypeSyntax,
			Message:  fmt.Sprintf("Invalid dictionary layout: %v", err),
			Location: designErrors.Location{File: sourcePath, Line: 1},
		}
	}

	l := &linker{
		source: sourcePath,
		errors: designErrors.NewErrorList(),
		dict: &Dictionary{
			elements: make(map[string]*ElementDefn),
			styles:   make(map[string]*PredefinedStyle),
			source:   sourcePath,
		},
		locations: make(map[string]designErrors.Location),
	}
	l.collect(&doc)
	l.link()

	if err := l.errors.ToError(); err != nil {
		return nil, err
	}
	return l.dict, nil
}

// linker turns the decoded document into linked definitions.
type linker struct {
	source    string
	errors    *designErrors.ErrorList
	dict      *Dictionary
	locations map[string]designErrors.Location
	pending   map[string][]yamlSlot
}

func (l *linker) location(node *yaml.Node) designErrors.Location {
	return designErrors.Location{File: l.source, Line: node.Line, Column: node.Column}
}

func (l *linker) collect(doc *yamlDictionary) {
	l.pending = make(map[string][]yamlSlot)

	for i := range doc.Elements {
		node := &doc.Elements[i]
		var ye yamlElement
		if err := node.Decode(&ye); err != nil {
			l.errors.AddError(designErrors.ErrorTypeSyntax, fmt.Sprintf("Invalid element definition: %v", err), l.location(node))
			continue
		}
		if ye.Name == "" {
			l.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Element definition at index %d missing required field 'name'", i),
				l.location(node),
				designErrors.SuggestMissingField("name", "Label"))
			continue
		}
		if _, dup := l.dict.elements[ye.Name]; dup {
			l.errors.AddError(designErrors.ErrorTypeSemantic,
				fmt.Sprintf("Duplicate element definition %q (first defined at %s)", ye.Name, l.locations[ye.Name]),
				l.location(node))
			continue
		}

		defn := &ElementDefn{
			name:     ye.Name,
			extends:  ye.Extends,
			abstract: ye.Abstract,
			props:    ye.Properties,
		}
		l.dict.elements[ye.Name] = defn
		l.dict.order = append(l.dict.order, ye.Name)
		l.locations[ye.Name] = l.location(node)
		l.pending[ye.Name] = ye.Slots
	}

	for i := range doc.Styles {
		node := &doc.Styles[i]
		var ys yamlStyle
		if err := node.Decode(&ys); err != nil {
			l.errors.AddError(designErrors.ErrorTypeSyntax, fmt.Sprintf("Invalid predefined style: %v", err), l.location(node))
			continue
		}
		if ys.Name == "" || ys.Type == "" {
			l.errors.AddError(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Predefined style at index %d requires both 'name' and 'type'", i),
				l.location(node))
			continue
		}
		if _, dup := l.dict.styles[ys.Name]; dup {
			l.errors.AddError(designErrors.ErrorTypeSemantic,
				fmt.Sprintf("Duplicate predefined style %q", ys.Name),
				l.location(node))
			continue
		}
		l.dict.styles[ys.Name] = &PredefinedStyle{Name: ys.Name, Type: ys.Type}
	}
}

func (l *linker) link() {
	names := l.dict.order

	for _, name := range names {
		defn := l.dict.elements[name]
		if defn.extends == "" {
			continue
		}
		parent, ok := l.dict.elements[defn.extends]
		if !ok {
			l.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Element %q extends unknown definition %q", name, defn.extends),
				l.locations[name],
				designErrors.SuggestName(defn.extends, names))
			continue
		}
		defn.parent = parent
	}

	for _, name := range names {
		if l.hasCycle(l.dict.elements[name]) {
			l.errors.AddError(designErrors.ErrorTypeSemantic,
				fmt.Sprintf("Element %q is part of an inheritance cycle", name),
				l.locations[name])
			// Break the cycle so later lookups terminate.
			l.dict.elements[name].parent = nil
		}
	}

	for _, name := range names {
		defn := l.dict.elements[name]
		seen := make(map[string]bool)
		for _, ys := range l.pending[name] {
			if ys.ID == "" {
				l.errors.AddError(designErrors.ErrorTypeStructural,
					fmt.Sprintf("Slot of element %q missing required field 'id'", name),
					l.locations[name])
				continue
			}
			if seen[ys.ID] {
				l.errors.AddError(designErrors.ErrorTypeSemantic,
					fmt.Sprintf("Element %q declares slot %q twice", name, ys.ID),
					l.locations[name])
				continue
			}
			seen[ys.ID] = true

			slot := &SlotDefn{ID: ys.ID, Multiple: ys.Multiple, ContentTypes: ys.Content}
			for _, ct := range ys.Content {
				content, ok := l.dict.elements[ct]
				if !ok {
					l.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
						fmt.Sprintf("Slot %q of element %q accepts unknown type %q", ys.ID, name, ct),
						l.locations[name],
						designErrors.SuggestName(ct, names))
					continue
				}
				slot.contents = append(slot.contents, content)
			}
			defn.slots = append(defn.slots, slot)
		}
	}
}

// hasCycle walks the parent chain of defn and reports whether it returns to
// defn. The walk is bounded by the number of definitions.
func (l *linker) hasCycle(defn *ElementDefn) bool {
	steps := 0
	for cur := defn.parent; cur != nil; cur = cur.parent {
		if cur == defn {
			return true
		}
		steps++
		if steps > len(l.dict.elements) {
			return true
		}
	}
	return false
}
