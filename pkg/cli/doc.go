// Package cli provides the folioctl command-line interface.
//
// # Overview
//
// folioctl opens the same store the server would, using the FOLIO_* environment
// variables read by pkg/config, and queries it through the category finder.
// Output is a table or tree by default and JSON with --output json.
//
// # Commands
//
// categories: Query categories
//
//	folioctl categories list --page 2 --size 20
//	folioctl categories get golang rust
//	folioctl categories tree
//	folioctl categories tree news
//	folioctl categories parent local
//	folioctl categories children news
//
// plugins: Inspect plugin manifests
//
//	folioctl plugins validate ./plugins/comments
//	folioctl plugins list --dir ./plugins
//
// seed: Load YAML documents into a writable store
//
//	FOLIO_STORE=postgres FOLIO_STORE_DSN=postgres://localhost/folio \
//		folioctl seed ./content --update
//
// # Related Packages
//
//   - pkg/app: Opens the configured store
//   - pkg/finder: Category queries and tree building
//   - pkg/plugins: Manifest loading and validation
package cli
