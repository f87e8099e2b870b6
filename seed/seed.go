// ABOUTME: Loads an initial client set from a JSON or YAML file
// ABOUTME: The file is only read; session edits are never written back
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/clientdesk/models"
)

// document is the wrapped form: {"clients": [...]}.
type document struct {
	Clients []models.Client `json:"clients" yaml:"clients"`
}

// Load reads a seed file. The format follows the extension (.json, .yaml,
// .yml); both a bare list and a {clients: [...]} document are accepted.
func Load(path string) ([]models.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	clients, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return clients, nil
}

// LoadDefault is Load for the configured default path, where a missing file
// just means the session starts empty.
func LoadDefault(path string) ([]models.Client, error) {
	clients, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return clients, err
}

// Parse decodes seed data. ext selects the format; anything other than
// .yaml/.yml is treated as JSON.
func Parse(data []byte, ext string) ([]models.Client, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) ([]models.Client, error) {
	if data[0] == '[' {
		var clients []models.Client
		if err := json.Unmarshal(data, &clients); err != nil {
			return nil, err
		}
		return clients, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Clients, nil
}

func parseYAML(data []byte) ([]models.Client, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var clients []models.Client
		if err := node.Content[0].Decode(&clients); err != nil {
			return nil, err
		}
		return clients, nil
	}

	var doc document
	if err := node.Content[0].Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Clients, nil
}
