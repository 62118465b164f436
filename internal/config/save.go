// Package config provides configuration types, defaults, and persistence for ved.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnsureSections appends top-level sections missing from an existing
// config file, so files written by older versions gain sections added
// since. The user's comments and formatting are preserved by editing the
// yaml.Node tree instead of re-marshaling the whole config. Reports
// whether the file was modified.
func EnsureSections(configPath string, c Config) (bool, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return false, fmt.Errorf("reading config: %w", err)
	}
	if len(data) == 0 {
		return false, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parsing config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return false, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return false, nil
	}

	present := make(map[string]bool)
	for i := 0; i < len(root.Content)-1; i += 2 {
		present[root.Content[i].Value] = true
	}

	modified := false
	for _, s := range sectionNodes(c) {
		if present[s.name] {
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: s.name, HeadComment: s.comment}
		root.Content = append(root.Content, key, s.node)
		modified = true
	}
	if !modified {
		return false, nil
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return false, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

// section is a top-level config key with the node holding its values.
type section struct {
	name    string
	comment string
	node    *yaml.Node
}

// sectionNodes builds the appendable sections from the given config.
// Tracing is deliberately absent: it is opt-in debug tooling and stays a
// comment in the template until the user asks for it.
func sectionNodes(c Config) []section {
	sections := []section{
		{
			name:    "ui",
			comment: "UI settings",
			node: mappingNode(
				scalarNode("markdown_style"), scalarNode(c.UI.MarkdownStyle),
			),
		},
	}

	if themeNode := buildThemeNode(c.Theme); themeNode != nil {
		sections = append(sections, section{
			name:    "theme",
			comment: "Theme configuration",
			node:    themeNode,
		})
	}

	sections = append(sections,
		section{
			name:    "watch",
			comment: "Watch the opened file for external changes",
			node: mappingNode(
				scalarNode("enabled"), boolNode(c.Watch.Enabled),
				scalarNode("debounce_ms"), intNode(c.Watch.DebounceMS),
			),
		},
		section{
			name:    "session",
			comment: "Remember the cursor position per file",
			node:    buildSessionNode(c.Session),
		},
	)

	return sections
}

// buildThemeNode creates a yaml.Node for the theme colors.
// Returns nil when every color is unset; an empty theme mapping would only
// add noise to the user's file.
func buildThemeNode(t ThemeConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if t.Filler != "" {
		node.Content = append(node.Content, scalarNode("filler"), scalarNode(t.Filler))
	}
	if t.Status != "" {
		node.Content = append(node.Content, scalarNode("status"), scalarNode(t.Status))
	}
	if t.Notice != "" {
		node.Content = append(node.Content, scalarNode("notice"), scalarNode(t.Notice))
	}
	if len(node.Content) == 0 {
		return nil
	}
	return node
}

// buildSessionNode creates a yaml.Node for the session section.
func buildSessionNode(s SessionConfig) *yaml.Node {
	node := mappingNode(scalarNode("enabled"), boolNode(s.Enabled))
	if s.DBPath != "" {
		node.Content = append(node.Content, scalarNode("db_path"), scalarNode(s.DBPath))
	}
	return node
}

func mappingNode(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

// writeAtomic writes data to path via a temp file in the same directory
// and a rename, so a crash mid-write cannot leave a truncated config.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".ved.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
