package parser

import (
	"fmt"
	"os"
	"path/filepath"

	designErrors "mercator-hq/folio/pkg/design/errors"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
)

// Parser parses design documents into modules.
type Parser struct {
	dict            *meta.Dictionary
	maxFileSize     int64 // Maximum document size in bytes (default: 10MB)
	maxIncludeDepth int   // Maximum library include nesting (default: 8)
}

// NewParser creates a parser resolving element types against dict.
func NewParser(dict *meta.Dictionary) *Parser {
	return &Parser{
		dict:            dict,
		maxFileSize:     10 * 1024 * 1024, // 10MB
		maxIncludeDepth: 8,
	}
}

// WithMaxFileSize sets the maximum document size.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxIncludeDepth sets how deeply libraries may include libraries.
func (p *Parser) WithMaxIncludeDepth(depth int) *Parser {
	p.maxIncludeDepth = depth
	return p
}

// Parse reads the design document at path together with the libraries it
// includes.
func (p *Parser) Parse(path string) (*model.Module, error) {
	return p.parseFile(path, 0, make(map[string]bool))
}

// ParseBytes parses a design document from memory. Includes are resolved
// relative to the directory of sourcePath.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*model.Module, error) {
	return p.parseBytes(data, sourcePath, 0, make(map[string]bool))
}

func (p *Parser) parseFile(path string, depth int, visiting map[string]bool) (*model.Module, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &designErrors.Error{
			Type:     designErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: designErrors.Location{File: path},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &designErrors.Error{
			Type:     designErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: designErrors.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &designErrors.Error{
			Type:     designErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: designErrors.Location{File: path},
		}
	}

	module, err := p.parseBytes(data, path, depth, visiting)
	if err != nil {
		// Add context to errors
		if errList, ok := err.(*designErrors.ErrorList); ok {
			for i, e := range errList.Errors {
				errList.Errors[i] = designErrors.AddContextToError(e)
			}
		}
		return nil, err
	}
	return module, nil
}

func (p *Parser) parseBytes(data []byte, sourcePath string, depth int, visiting map[string]bool) (*model.Module, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &designErrors.Error{
			Type:     designErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: designErrors.Location{File: sourcePath},
		}
	}

	doc, root, err := parseYAMLBytes(data)
	if err != nil {
		return nil, &designErrors.Error{
			Type:       designErrors.ErrorTypeSyntax,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Location:   designErrors.Location{File: sourcePath, Line: 1, Column: 1},
			Suggestion: "Check YAML syntax (indentation, colons, quotes)",
		}
	}

	key := sourcePath
	if abs, err := filepath.Abs(sourcePath); err == nil {
		key = abs
	}
	visiting[key] = true
	defer delete(visiting, key)

	b := newBuilder(sourcePath, p.dict)
	module := b.buildModule(doc, root)
	if module != nil {
		p.includeLibraries(b, module, doc, sourcePath, depth, visiting)
		b.checkExtends(module)
	}

	if err := b.errors.ToError(); err != nil {
		return nil, err
	}
	return module, nil
}

// includeLibraries parses each included library and attaches it to module.
// Failures are recorded on the builder so one bad include does not hide
// problems elsewhere in the document.
func (p *Parser) includeLibraries(b *builder, module *model.Module, doc *yamlDocument, sourcePath string, depth int, visiting map[string]bool) {
	loc := designErrors.Location{File: sourcePath, Line: 1, Column: 1}

	for _, inc := range doc.Includes {
		if inc.Path == "" {
			b.errors.AddErrorWithSuggestion(designErrors.ErrorTypeStructural,
				"Include missing required field 'path'", loc,
				designErrors.SuggestMissingField("path", "shared.yaml"))
			continue
		}
		if depth+1 > p.maxIncludeDepth {
			b.errors.AddError(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Include %q exceeds maximum include depth %d", inc.Path, p.maxIncludeDepth), loc)
			continue
		}

		path := inc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(sourcePath), path)
		}
		if abs, err := filepath.Abs(path); err == nil && visiting[abs] {
			b.errors.AddError(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Include cycle through %q", inc.Path), loc)
			continue
		}

		lib, err := p.parseFile(path, depth+1, visiting)
		if err != nil {
			b.addNested(err)
			continue
		}
		if !lib.IsLibrary() {
			b.errors.AddError(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Included document %q is not a library", inc.Path), loc)
			continue
		}
		if inc.Namespace != "" {
			lib.SetNamespace(inc.Namespace)
		}
		if err := module.IncludeLibrary(lib); err != nil {
			b.errors.AddError(designErrors.ErrorTypeStructural,
				fmt.Sprintf("Cannot include %q: %v", inc.Path, err), loc)
		}
	}
}
