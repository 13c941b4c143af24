package parser

import (
	"bytes"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mercator-hq/folio/pkg/design/model"
)

// Marshal writes module as a design document. Included libraries are
// written as includes relative to the module's file; their contents are not
// inlined. Empty slots are omitted.
func Marshal(module *model.Module) ([]byte, error) {
	if module == nil {
		return nil, fmt.Errorf("cannot marshal nil module")
	}

	root := module.Root()
	doc := yamlDocument{
		Kind:      kindReport,
		Name:      root.Name,
		ID:        root.ID,
		Namespace: module.Namespace(),
		ReadOnly:  module.IsReadOnly() && module.Host() == nil,
	}
	if module.IsLibrary() {
		doc.Kind = kindLibrary
	}

	for _, lib := range module.Libraries() {
		doc.Includes = append(doc.Includes, yamlInclude{
			Path:      includePath(module.FileName(), lib.FileName()),
			Namespace: lib.Namespace(),
		})
	}

	slots, err := slotsNode(root)
	if err != nil {
		return nil, err
	}

	var out yaml.Node
	if err := out.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode module %q: %w", root.Name, err)
	}
	appendMapping(&out, "slots", slots)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode module %q: %w", root.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode module %q: %w", root.Name, err)
	}
	return buf.Bytes(), nil
}

// slotsNode builds the "slot: [elements]" mapping of e in slot definition
// order, or nil when every slot is empty.
func slotsNode(e *model.Element) (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, id := range e.SlotIDs() {
		contents := e.Contents(id)
		if len(contents) == 0 {
			continue
		}

		list := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range contents {
			ye := yamlElement{
				Type:       child.TypeName(),
				Name:       child.Name,
				ID:         child.ID,
				Extends:    child.ExtendsName,
				Virtual:    child.Virtual,
				Properties: child.LocalProperties(),
			}
			if len(ye.Properties) == 0 {
				ye.Properties = nil
			}

			nested, err := slotsNode(child)
			if err != nil {
				return nil, err
			}

			var node yaml.Node
			if err := node.Encode(&ye); err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", child, err)
			}
			appendMapping(&node, "slots", nested)
			list.Content = append(list.Content, &node)
		}

		appendMapping(mapping, id, list)
	}

	if len(mapping.Content) == 0 {
		return nil, nil
	}
	return mapping, nil
}

// includePath expresses libFile relative to the directory of hostFile when
// possible.
func includePath(hostFile, libFile string) string {
	if hostFile == "" || libFile == "" {
		return libFile
	}
	rel, err := filepath.Rel(filepath.Dir(hostFile), libFile)
	if err != nil {
		return libFile
	}
	return filepath.ToSlash(rel)
}
