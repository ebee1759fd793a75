// package importer turns AsyncAPI documents into event catalog objects.
package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when the AsyncAPI document cannot be
// imported.
var ErrInvalidDocument = errors.New("invalid asyncapi document")

// _componentMessageRef is the reference prefix of component messages.
const _componentMessageRef = "#/components/messages/"

// Document is the part of an AsyncAPI document used by the importer.
// Both 2.x (publish/subscribe operations) and 3.x (channel messages)
// layouts are understood.
type Document struct {
	AsyncAPI   string             `yaml:"asyncapi"`
	Info       Info               `yaml:"info"`
	Channels   map[string]Channel `yaml:"channels"`
	Components Components         `yaml:"components"`
}

// Info holds the document metadata.
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Channel is a single channel of the document.
type Channel struct {
	Address   string             `yaml:"address"`
	Publish   *Operation         `yaml:"publish"`
	Subscribe *Operation         `yaml:"subscribe"`
	Messages  map[string]Message `yaml:"messages"`
}

// Operation is a 2.x channel operation.
type Operation struct {
	Message Message `yaml:"message"`
}

// Message is a message definition or a reference to one.
type Message struct {
	Ref         string    `yaml:"$ref"`
	Name        string    `yaml:"name"`
	ContentType string    `yaml:"contentType"`
	Payload     yaml.Node `yaml:"payload"`
}

// Components holds the reusable document objects.
type Components struct {
	Messages map[string]Message `yaml:"messages"`
	Schemas  map[string]Schema  `yaml:"schemas"`
}

// Schema is a component schema.
type Schema struct {
	Type string `yaml:"type"`
	Enum []any  `yaml:"enum"`
}

// Parse decodes an AsyncAPI document given either as YAML or JSON.
func Parse(raw []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	version := "v" + doc.AsyncAPI
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("%w: unsupported asyncapi version %q", ErrInvalidDocument, doc.AsyncAPI)
	}

	switch semver.Major(version) {
	case "v2", "v3":
	default:
		return nil, fmt.Errorf("%w: unsupported asyncapi version %q", ErrInvalidDocument, doc.AsyncAPI)
	}

	if strings.TrimSpace(doc.Info.Title) == "" {
		return nil, fmt.Errorf("%w: info.title is required", ErrInvalidDocument)
	}

	if strings.TrimSpace(doc.Info.Version) == "" {
		return nil, fmt.Errorf("%w: info.version is required", ErrInvalidDocument)
	}

	return &doc, nil
}

// EnumNames returns the names of component schemas that are enums.
func (d *Document) EnumNames() []string {
	var names []string

	for name, s := range d.Components.Schemas {
		if len(s.Enum) > 0 {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// SchemaNames returns the names of component schemas that are not
// enums, together with the names of messages that define their payload
// inline.
func (d *Document) SchemaNames() []string {
	set := make(map[string]struct{})

	for name, s := range d.Components.Schemas {
		if len(s.Enum) == 0 {
			set[name] = struct{}{}
		}
	}

	for name, m := range d.messages() {
		if m.Payload.Kind != 0 && !isRefNode(&m.Payload) {
			set[name] = struct{}{}
		}
	}

	return sortedKeys(set)
}

// EventNames returns the names of all messages used or defined by the
// document.
func (d *Document) EventNames() []string {
	set := make(map[string]struct{})

	for name := range d.messages() {
		set[name] = struct{}{}
	}

	return sortedKeys(set)
}

// messages collects component messages and inline channel messages by
// name.
func (d *Document) messages() map[string]Message {
	msgs := make(map[string]Message, len(d.Components.Messages))

	for name, m := range d.Components.Messages {
		msgs[name] = m
	}

	add := func(key string, m Message) {
		if strings.HasPrefix(m.Ref, _componentMessageRef) {
			name := strings.TrimPrefix(m.Ref, _componentMessageRef)
			if _, ok := msgs[name]; !ok {
				msgs[name] = Message{}
			}

			return
		}

		if m.Ref != "" {
			return
		}

		name := m.Name
		if name == "" {
			name = key
		}

		msgs[name] = m
	}

	for key, ch := range d.Channels {
		if ch.Publish != nil {
			add(key, ch.Publish.Message)
		}

		if ch.Subscribe != nil {
			add(key, ch.Subscribe.Message)
		}

		for name, m := range ch.Messages {
			add(name, m)
		}
	}

	return msgs
}

// isRefNode reports whether the node is a mapping holding only a $ref.
func isRefNode(n *yaml.Node) bool {
	return n.Kind == yaml.MappingNode && len(n.Content) == 2 && n.Content[0].Value == "$ref"
}

// sortedKeys returns the set keys in order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
