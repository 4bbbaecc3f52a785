// Package document models the launcher's container configuration file
// (containers/app.yml) as an ordered list of classified lines.
//
// The file is YAML, but the operator-facing defaults live in comments:
// a disabled setting is a single-hash line such as "#UNICORN_WORKERS: 3"
// or "#- \"templates/web.ssl.template.yml\"". Updates are applied by
// section and key lookup rather than by regular expressions, and every
// update reports whether the field existed. Lines that are not touched
// are written back unchanged, comments included.
package document
