package plugins

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/folio/pkg/extension"
)

// RuntimeVersion is the folio version plugins are checked against
const RuntimeVersion = "2.20.0"

// Loader discovers plugin manifests on disk and registers them in a store
type Loader struct {
	pluginDirs     []string
	store          extension.Store[*Plugin]
	runtimeVersion string
	log            *logrus.Logger
	now            func() time.Time
}

// NewLoader creates a new plugin loader
func NewLoader(dirs []string, store extension.Store[*Plugin], log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}

	return &Loader{
		pluginDirs:     dirs,
		store:          store,
		runtimeVersion: RuntimeVersion,
		log:            log,
		now:            time.Now,
	}
}

// SetRuntimeVersion overrides the version checked against spec.requires
func (l *Loader) SetRuntimeVersion(version string) {
	l.runtimeVersion = version
}

// DiscoverPlugins scans plugin directories and registers every valid plugin.
// Invalid plugins are logged and skipped.
func (l *Loader) DiscoverPlugins(ctx context.Context) ([]*Plugin, error) {
	var plugins []*Plugin

	for _, dir := range l.pluginDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			l.log.Debugf("Plugin directory does not exist: %s", dir)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			l.log.Warnf("Failed to read plugin directory %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			pluginDir := filepath.Join(dir, entry.Name())
			plugin, err := l.LoadPlugin(ctx, pluginDir)
			if err != nil {
				if ctx.Err() != nil {
					return plugins, ctx.Err()
				}
				l.log.Warnf("Failed to load plugin from %s: %v", pluginDir, err)
				continue
			}

			plugins = append(plugins, plugin)
		}
	}

	return plugins, nil
}

// LoadPlugin loads, validates and registers the plugin in pluginDir
func (l *Loader) LoadPlugin(ctx context.Context, pluginDir string) (*Plugin, error) {
	plugin, err := LoadManifestFromDir(pluginDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	if validationErrors := ValidateManifest(plugin); len(validationErrors) > 0 {
		return nil, fmt.Errorf("manifest validation failed: %v", validationErrors)
	}

	plugin.Status = l.statusOf(plugin)

	if err := l.upsert(ctx, plugin); err != nil {
		return nil, fmt.Errorf("failed to register plugin %s: %w", plugin.Metadata.Name, err)
	}

	l.log.WithFields(logrus.Fields{
		"plugin":  plugin.Metadata.Name,
		"version": plugin.Spec.GetVersion(),
		"phase":   plugin.Status.Phase,
	}).Info("Loaded plugin")

	return plugin, nil
}

// statusOf derives the phase of a freshly loaded plugin
func (l *Loader) statusOf(plugin *Plugin) PluginStatus {
	if requires, ok := plugin.Spec.GetRequiresOk(); ok {
		satisfied, err := Satisfies(l.runtimeVersion, *requires)
		if err != nil {
			return PluginStatus{Phase: PhaseFailed, Message: err.Error()}
		}
		if !satisfied {
			return PluginStatus{
				Phase:   PhaseFailed,
				Message: fmt.Sprintf("requires %s, running %s", *requires, l.runtimeVersion),
			}
		}
	}

	if !plugin.Spec.GetEnabled() {
		return PluginStatus{Phase: PhaseStopped}
	}
	started := l.now().UTC()
	return PluginStatus{Phase: PhaseStarted, LastStartTime: &started}
}

func (l *Loader) upsert(ctx context.Context, plugin *Plugin) error {
	existing, err := l.store.Fetch(ctx, plugin.Metadata.Name)
	if errors.Is(err, extension.ErrNotFound) {
		return l.store.Create(ctx, plugin)
	}
	if err != nil {
		return err
	}

	plugin.Metadata.SetVersion(existing.Metadata.GetVersion())
	return l.store.Update(ctx, plugin)
}

// UnloadPlugin removes a registered plugin by name
func (l *Loader) UnloadPlugin(ctx context.Context, name string) error {
	if err := l.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to unload plugin: %w", err)
	}
	l.log.WithField("plugin", name).Info("Unloaded plugin")
	return nil
}

// GetDefaultPluginDirectories returns the default plugin search directories
func GetDefaultPluginDirectories() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}

	return []string{
		filepath.Join(homeDir, ".folio", "plugins"),
		"/etc/folio/plugins",
		"./plugins", // Current directory
	}
}
