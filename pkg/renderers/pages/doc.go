// Package pages provides the built-in HTML page renderers: the articles list,
// the skills overview, the projects gallery, and the contact page with its
// anti-bot challenge placeholder. All four share one embedded template bundle
// and can be swapped out per renderer via options.
package pages
