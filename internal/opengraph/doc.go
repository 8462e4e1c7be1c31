// Package opengraph derives social-preview meta tags for an entry: a pure
// function of the entry and site config with no filesystem access. Which
// variant a post gets depends on the derived media actually produced, so the
// builder invokes it after media generation.
package opengraph
