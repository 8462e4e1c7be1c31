// Package watch rebuilds the site on filesystem changes. It debounces change
// bursts, coalesces overlapping rebuild requests, and holds a file lock so
// two watchers never build the same output tree concurrently.
package watch
