// Package template defines the rendering engine contract page renderers
// depend on. The gotemplate subpackage provides the default pongo2-backed
// implementation.
package template
