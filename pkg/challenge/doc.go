// Package challenge coordinates a third-party verification widget that loads
// on its own schedule. It owns widget creation against placeholder elements,
// retry with exponential backoff when rendering fails, re-rendering at a
// different size when the viewport crosses the configured breakpoint, and the
// submission gate that defers a form submission until the challenge is
// solved.
//
// The widget API, clock, and submission sink are injected so hosts can bind
// the coordinator to a real widget script at the boundary while tests drive
// it with scripted doubles.
package challenge
