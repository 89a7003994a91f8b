// Package site orchestrates a full build: it loads the content collections,
// derives the contact form from its OpenAPI definition, resolves the theme,
// and fans page rendering out across the registered renderers before writing
// the output tree. Watch mode rebuilds on content changes.
package site
