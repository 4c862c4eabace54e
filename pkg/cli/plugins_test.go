package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/folio/pkg/plugins"
)

const validManifest = `apiVersion: plugin.folio.dev/v1alpha1
kind: Plugin
metadata:
  name: comments
spec:
  version: 1.2.0
  requires: ">=2.0.0"
  enabled: true
`

const futureManifest = `apiVersion: plugin.folio.dev/v1alpha1
kind: Plugin
metadata:
  name: gallery
spec:
  version: 0.1.0
  requires: ">=3.0.0"
  enabled: true
`

const badRequirementManifest = `apiVersion: plugin.folio.dev/v1alpha1
kind: Plugin
metadata:
  name: broken
spec:
  version: 1.0.0
  requires: "newer please"
`

func pluginRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "comments", plugins.ManifestFile), validManifest)
	writeFile(t, filepath.Join(root, "gallery", plugins.ManifestFile), futureManifest)
	return root
}

func TestPluginsValidate(t *testing.T) {
	useFileStore(t, contentDir(t))
	root := pluginRoot(t)
	writeFile(t, filepath.Join(root, "broken", plugins.ManifestFile), badRequirementManifest)

	t.Run("directory and file paths", func(t *testing.T) {
		out, err := execute(t, "plugins", "validate",
			filepath.Join(root, "comments"),
			filepath.Join(root, "gallery", plugins.ManifestFile))
		require.NoError(t, err)
		assert.Contains(t, out, "ok (comments)")
		assert.Contains(t, out, "ok (gallery)")
	})

	t.Run("invalid requirement", func(t *testing.T) {
		out, err := execute(t, "plugins", "validate", filepath.Join(root, "broken"), "-o", "json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 manifests are invalid")

		var results []ValidationResult
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		assert.False(t, results[0].Valid)
		require.NotEmpty(t, results[0].Errors)
		assert.Equal(t, "spec.requires", results[0].Errors[0].Field)
	})

	t.Run("missing manifest", func(t *testing.T) {
		out, err := execute(t, "plugins", "validate", filepath.Join(root, "nowhere"))
		require.Error(t, err)
		assert.Contains(t, out, "invalid")
	})
}

func TestPluginsList(t *testing.T) {
	useFileStore(t, contentDir(t))
	t.Setenv("FOLIO_PLUGIN_DIRS", pluginRoot(t))

	out, err := execute(t, "plugins", "list", "-o", "json")
	require.NoError(t, err)

	var found []*plugins.Plugin
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 2)
	assert.Equal(t, "comments", found[0].Metadata.Name)
	assert.Equal(t, plugins.PhaseStarted, found[0].Status.Phase)
	assert.Equal(t, "gallery", found[1].Metadata.Name)
	assert.Equal(t, plugins.PhaseFailed, found[1].Status.Phase)

	out, err = execute(t, "plugins", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PHASE")
	assert.Contains(t, out, "gallery")

	out, err = execute(t, "plugins", "list", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "no plugins found")
}
