// Package post parses markdown source files with YAML front matter into the
// Entry model the rest of the build pipeline consumes.
//
// One Entry is produced per source file; the slug is the filename stem and
// must be unique across the content directory. Front-matter failures are
// fatal to the whole load, matching the all-or-nothing contract of a full
// site rebuild. Sorting (date descending, slug ascending tie-break) and the
// site-wide tag union also live here.
package post
