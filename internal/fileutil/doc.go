// Package fileutil holds the small filesystem helpers shared by the site
// assembler: directory creation and asset copying into the output tree.
package fileutil
