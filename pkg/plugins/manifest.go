package plugins

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest file name inside a plugin directory
const ManifestFile = "plugin.yaml"

var (
	semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	nameRegex   = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)
)

// LoadManifest loads and parses a plugin manifest from a file
func LoadManifest(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	plugin, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return plugin, nil
}

// LoadManifestFromDir loads a plugin manifest from a directory (looks for plugin.yaml)
func LoadManifestFromDir(dir string) (*Plugin, error) {
	return LoadManifest(filepath.Join(dir, ManifestFile))
}

// ParseManifest decodes a YAML manifest. The document goes through the JSON
// model so required properties are enforced the same way as over the API.
func ParseManifest(data []byte) (*Plugin, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("empty manifest")
	}
	if kind, _ := doc["kind"].(string); kind != KindPlugin {
		return nil, fmt.Errorf("unexpected kind %q, want %s", kind, KindPlugin)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	plugin := &Plugin{}
	if err := json.Unmarshal(encoded, plugin); err != nil {
		return nil, err
	}
	return plugin, nil
}

// SaveManifest saves a plugin manifest to a file
func SaveManifest(plugin *Plugin, path string) error {
	encoded, err := json.Marshal(manifestOf(plugin))
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// manifestDoc is the on-disk manifest shape; runtime state is left out
type manifestDoc struct {
	APIVersion string       `json:"apiVersion"`
	Kind       string       `json:"kind"`
	Metadata   manifestMeta `json:"metadata"`
	Spec       PluginSpec   `json:"spec"`
}

type manifestMeta struct {
	Name        string            `json:"name"`
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

func manifestOf(plugin *Plugin) manifestDoc {
	return manifestDoc{
		APIVersion: APIVersion,
		Kind:       KindPlugin,
		Metadata: manifestMeta{
			Name:        plugin.Metadata.Name,
			Labels:      plugin.Metadata.Labels,
			Annotations: plugin.Metadata.Annotations,
		},
		Spec: plugin.Spec,
	}
}

// ValidateManifest performs basic validation on a plugin manifest
func ValidateManifest(plugin *Plugin) []ValidationError {
	var errors []ValidationError

	name := plugin.Metadata.Name
	if name == "" {
		errors = append(errors, ValidationError{
			Field:   "metadata.name",
			Message: "Plugin name is required",
		})
	} else if !nameRegex.MatchString(name) {
		errors = append(errors, ValidationError{
			Field:   "metadata.name",
			Message: fmt.Sprintf("Invalid plugin name: %s (lowercase letters, digits and '-')", name),
		})
	}

	version := plugin.Spec.GetVersion()
	if version == "" {
		errors = append(errors, ValidationError{
			Field:   "spec.version",
			Message: "Version is required",
		})
	} else if !isValidSemver(version) {
		errors = append(errors, ValidationError{
			Field:   "spec.version",
			Message: fmt.Sprintf("Invalid semver format: %s", version),
		})
	}

	if requires, ok := plugin.Spec.GetRequiresOk(); ok {
		if _, err := ParseRequirement(*requires); err != nil {
			errors = append(errors, ValidationError{
				Field:   "spec.requires",
				Message: err.Error(),
			})
		}
	}

	deps := plugin.Spec.GetPluginDependencies()
	for _, dep := range slices.Sorted(maps.Keys(deps)) {
		if _, err := ParseRequirement(deps[dep]); err != nil {
			errors = append(errors, ValidationError{
				Field:   "spec.pluginDependencies." + dep,
				Message: err.Error(),
			})
		}
	}

	for i, license := range plugin.Spec.GetLicense() {
		if license.GetName() == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("spec.license[%d].name", i),
				Message: "License name is required",
			})
		}
	}

	return errors
}

// isValidSemver checks if a version string follows semantic versioning
func isValidSemver(version string) bool {
	return semverRegex.MatchString(version)
}
