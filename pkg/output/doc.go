// Package output renders inspect reports.
//
// The terminal format draws the materialized configuration as a pterm tree
// styled with lipgloss. Styles come from the embedded styles.yaml and are
// bound to the destination writer, so redirected output is never colored.
// The text format prints the same tree unstyled, and json, yaml and toml
// serialize the report as data.
package output
