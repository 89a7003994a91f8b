// Package content defines the data model for the generated site: articles,
// skill groups and projects, plus the presentation helpers that turn raw
// collection fields into display-ready values.
package content
