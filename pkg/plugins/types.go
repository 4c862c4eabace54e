package plugins

import (
	"time"

	"github.com/platinummonkey/folio/pkg/extension"
)

// APIVersion is the group/version of plugin manifests
const APIVersion = "plugin.folio.dev/v1alpha1"

// KindPlugin is the kind name of Plugin
const KindPlugin = "Plugin"

// Indexed Plugin fields
const (
	FieldEnabled = "spec.enabled"
	FieldPhase   = "status.phase"
)

// Phase is the lifecycle phase of an installed plugin
type Phase string

const (
	PhasePending  Phase = "PENDING"
	PhaseStarting Phase = "STARTING"
	PhaseStarted  Phase = "STARTED"
	PhaseStopped  Phase = "STOPPED"
	PhaseFailed   Phase = "FAILED"
	PhaseUnknown  Phase = "UNKNOWN"
)

// Plugin is an installed plugin
type Plugin struct {
	APIVersion string             `json:"apiVersion,omitempty"`
	Kind       string             `json:"kind,omitempty"`
	Metadata   extension.Metadata `json:"metadata"`
	Spec       PluginSpec         `json:"spec"`
	Status     PluginStatus       `json:"status"`
}

// PluginStatus is the observed state of a plugin
type PluginStatus struct {
	Phase         Phase      `json:"phase,omitempty"`
	LastStartTime *time.Time `json:"lastStartTime,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// GetMetadata implements extension.Object
func (p *Plugin) GetMetadata() *extension.Metadata {
	return &p.Metadata
}

// NewPlugin builds a Plugin with its type header set
func NewPlugin(name string, spec PluginSpec) *Plugin {
	return &Plugin{
		APIVersion: APIVersion,
		Kind:       KindPlugin,
		Metadata:   extension.Metadata{Name: name},
		Spec:       spec,
		Status:     PluginStatus{Phase: PhasePending},
	}
}

// PluginType describes the Plugin kind and its indexed fields
var PluginType = &extension.Type[*Plugin]{
	Kind: KindPlugin,
	New:  func() *Plugin { return &Plugin{} },
	Fields: []extension.Field[*Plugin]{
		{
			Name: FieldEnabled,
			Values: func(p *Plugin) []string {
				if p.Spec.GetEnabled() {
					return []string{"true"}
				}
				return []string{"false"}
			},
		},
		{
			Name:   FieldPhase,
			Values: func(p *Plugin) []string { return []string{string(p.Status.Phase)} },
		},
	},
}

// ValidationError is a manifest validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
