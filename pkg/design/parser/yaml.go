package parser

import (
	"gopkg.in/yaml.v3"
)

const (
	kindReport  = "report"
	kindLibrary = "library"
)

// yamlDocument is the top-level layout of a design document.
type yamlDocument struct {
	Kind      string        `yaml:"kind"`
	Name      string        `yaml:"name,omitempty"`
	ID        string        `yaml:"id,omitempty"`
	Namespace string        `yaml:"namespace,omitempty"`
	ReadOnly  bool          `yaml:"read_only,omitempty"`
	Includes  []yamlInclude `yaml:"includes,omitempty"`

	// Slots is looked up in the decoded node tree so slot order and
	// locations survive. yaml.v3 does not fill *yaml.Node fields on Decode.
	Slots *yaml.Node `yaml:"-"`
}

// yamlInclude references a library file. Namespace overrides the one the
// library declares.
type yamlInclude struct {
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace,omitempty"`
}

// yamlElement is one element of a slot.
type yamlElement struct {
	Type       string         `yaml:"type"`
	Name       string         `yaml:"name,omitempty"`
	ID         string         `yaml:"id,omitempty"`
	Extends    string         `yaml:"extends,omitempty"`
	Virtual    bool           `yaml:"virtual,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	Slots      *yaml.Node     `yaml:"-"`
}

// parseYAMLBytes decodes a document, keeping the root node for locations.
func parseYAMLBytes(data []byte) (*yamlDocument, *yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, err
	}

	var doc yamlDocument
	if err := root.Decode(&doc); err != nil {
		return nil, nil, err
	}
	doc.Slots = mappingValue(docNode(&root), "slots")
	return &doc, &root, nil
}

// mappingValue returns the value node of key in mapping m, or nil when m is
// not a mapping, the key is absent or its value is null.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		if v := m.Content[i+1]; v.Kind != yaml.ScalarNode || v.Tag != "!!null" {
			return v
		}
		return nil
	}
	return nil
}

// appendMapping adds key: value to mapping m. A nil value is skipped.
func appendMapping(m *yaml.Node, key string, value *yaml.Node) {
	if value == nil {
		return
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value)
}
