package loader

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/svclint/pkg/lint"
	"github.com/leapstack-labs/svclint/pkg/naming"
	"gopkg.in/yaml.v3"
)

// servicesKey is the top-level key holding the service declarations.
const servicesKey = "services"

// classKey is the declaration key holding the bound type.
const classKey = "class"

// Document is a parsed service configuration file.
type Document struct {
	File
	// HasServices is false when the document has no services mapping.
	HasServices bool
	// Records are the declarations with a usable class, in document order.
	Records []lint.ServiceRecord
	// Ignored counts declarations without a usable class.
	Ignored int
}

// ParseFile reads and parses a single document.
func (l *Loader) ParseFile(f File) (*Document, error) {
	content, err := os.ReadFile(f.Path) //nolint:gosec // G304: path comes from discovery
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.RelPath, err)
	}
	return l.Parse(f, content)
}

// Parse parses document content. f is only used for labelling.
func (l *Loader) Parse(f File, content []byte) (*Document, error) {
	doc := &Document{File: f}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.RelPath, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return doc, nil
	}

	services := mappingValue(top, servicesKey)
	if services == nil || services.Kind != yaml.MappingNode {
		return doc, nil
	}
	doc.HasServices = true

	for i := 0; i+1 < len(services.Content); i += 2 {
		key, def := services.Content[i], services.Content[i+1]

		class := classOf(def)
		if class == "" {
			doc.Ignored++
			continue
		}

		typ, err := naming.ParseTypeName(class)
		if err != nil {
			l.logger.Warn("skipping service with invalid class",
				"file", f.RelPath, "line", key.Line, "service", key.Value, "error", err)
			doc.Ignored++
			continue
		}

		doc.Records = append(doc.Records, lint.ServiceRecord{
			Identifier: key.Value,
			Type:       typ,
			SourceFile: f.RelPath,
			Line:       key.Line,
		})
	}

	l.logger.Debug("parsed document", "file", f.RelPath, "services", len(doc.Records), "ignored", doc.Ignored)
	return doc, nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}

// classOf returns the class of a service definition, or "" if it has none.
func classOf(def *yaml.Node) string {
	def = resolveAlias(def)
	if def == nil || def.Kind != yaml.MappingNode {
		return ""
	}
	v := mappingValue(def, classKey)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
		return ""
	}
	return v.Value
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
