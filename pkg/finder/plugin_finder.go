package finder

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/plugins"
)

// PluginFinder lets themes check for installed plugins
type PluginFinder struct {
	client extension.Client[*plugins.Plugin]
}

// NewPluginFinder creates a PluginFinder
func NewPluginFinder(client extension.Client[*plugins.Plugin]) *PluginFinder {
	return &PluginFinder{client: client}
}

// Available reports whether the plugin is installed and enabled
func (f *PluginFinder) Available(ctx context.Context, name string) (ok bool, err error) {
	ctx, span := tracer.Start(ctx, "PluginFinder.Available",
		trace.WithAttributes(attribute.String("plugin.name", name)))
	defer func() { endSpan(span, err) }()

	plugin, err := f.fetch(ctx, name)
	if err != nil || plugin == nil {
		return false, err
	}
	return plugin.Spec.GetEnabled(), nil
}

// AvailableVersion reports whether the plugin is installed, enabled and its
// version satisfies requirement
func (f *PluginFinder) AvailableVersion(ctx context.Context, name, requirement string) (ok bool, err error) {
	ctx, span := tracer.Start(ctx, "PluginFinder.AvailableVersion",
		trace.WithAttributes(
			attribute.String("plugin.name", name),
			attribute.String("plugin.requires", requirement),
		))
	defer func() { endSpan(span, err) }()

	plugin, err := f.fetch(ctx, name)
	if err != nil || plugin == nil || !plugin.Spec.GetEnabled() {
		return false, err
	}
	return plugins.Satisfies(plugin.Spec.GetVersion(), requirement)
}

// fetch returns nil without error when the plugin does not exist
func (f *PluginFinder) fetch(ctx context.Context, name string) (*plugins.Plugin, error) {
	plugin, err := f.client.Fetch(ctx, name)
	if errors.Is(err, extension.ErrNotFound) {
		return nil, nil
	}
	return plugin, err
}
