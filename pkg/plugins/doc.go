// Package plugins models installed folio plugins.
//
// # Overview
//
// A plugin is described by a plugin.yaml manifest in its own directory:
//
//	apiVersion: plugin.folio.dev/v1alpha1
//	kind: Plugin
//	metadata:
//	  name: comment-widget
//	spec:
//	  displayName: Comment Widget
//	  version: 1.4.0
//	  requires: ">=2.0.0"
//	  enabled: true
//	  author:
//	    name: folio
//	  license:
//	    - name: MIT
//
// PluginSpec is generated from the folio OpenAPI document and follows the
// generator's accessor conventions (GetX, GetXOk, HasX, SetX). Version is the
// only required property; decoding a spec without it fails.
//
// # Loading
//
// Loader scans plugin directories, validates each manifest and upserts it into
// an extension store, deriving the plugin phase from its enablement flag and
// its runtime requirement:
//
//	loader := plugins.NewLoader(plugins.GetDefaultPluginDirectories(), store, log)
//	loaded, err := loader.DiscoverPlugins(ctx)
//
// # Version Requirements
//
// Requirements accept "*", exact versions and the comparators >=, >, <=, < and =.
// Space separated comparators must all hold and "||" separates alternatives:
//
//	ok, err := plugins.Satisfies("2.3.1", ">=2.0.0 <3.0.0 || 1.9.x")
package plugins
