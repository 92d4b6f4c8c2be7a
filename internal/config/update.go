package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
	"gopkg.in/yaml.v3"
)

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# popkit configuration\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	encoder.Close()

	return writeConfig(path, buf.String())
}

// SetValue sets a dotted key such as "popover.placement" in the config file
// at path. Comments and the order of existing keys are preserved. Missing
// sections are created. The result must still load and validate.
func SetValue(path, key, value string) error {
	if _, ok := knownKeys()[key]; !ok {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Run 'popkit config show' to list the available keys.")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to read config file", "Check the path is correct")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to parse config file", "Check the YAML syntax in "+path)
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return errors.New(errors.ErrConfig, "Invalid YAML document structure", "")
	}

	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig, "Expected a mapping at the document root", "")
	}

	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next := findMapValue(node, part)
		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(part), next)
		}
		if next.Kind != yaml.MappingNode {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' is not a section", part),
				"Fix the file by hand or regenerate it with 'popkit config init'.")
		}
		node = next
	}

	leaf := parts[len(parts)-1]
	if existing := findMapValue(node, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = ""
		existing.Value = value
		existing.Content = nil
	} else {
		node.Content = append(node.Content, scalar(leaf), &yaml.Node{Kind: yaml.ScalarNode, Value: value})
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	encoder.Close()

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := writeConfig(tmp, buf.String()); err != nil {
		return err
	}
	defer os.Remove(tmp)

	cfg, err := Load(tmp)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Value '%s' doesn't fit %s", value, key), "")
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	return writeConfig(path, buf.String())
}

func writeConfig(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, "Failed to create config directory", "Check directory permissions")
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to write config file", "Check file permissions")
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// Flatten lists every key of cfg in dotted form with its YAML value, in
// file order.
func Flatten(cfg *Config) ([][2]string, error) {
	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	var out [][2]string
	flattenNode(&root, "", &out)
	return out, nil
}

func flattenNode(n *yaml.Node, prefix string, out *[][2]string) {
	if n.Kind != yaml.MappingNode {
		*out = append(*out, [2]string{prefix, n.Value})
		return
	}
	for i := 0; i < len(n.Content)-1; i += 2 {
		key := n.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		flattenNode(n.Content[i+1], key, out)
	}
}

func knownKeys() map[string]struct{} {
	pairs, _ := Flatten(DefaultConfig())
	keys := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		keys[p[0]] = struct{}{}
	}
	return keys
}
