// Package watch regenerates manifests whenever the microservice description
// or its env file changes. Bursts of file events are debounced into a single
// regeneration and regenerations never overlap.
package watch
