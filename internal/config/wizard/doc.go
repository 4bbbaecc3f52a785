// Package wizard collects deployment settings from the operator and writes
// them into the container configuration document.
//
// Collection and writing are separate steps. [Collect] asks six questions
// through a [Prompter] and returns a candidate [config.Deployment] without
// touching any file. [Run] repeats collection until the operator confirms the
// summary. [Apply] then writes every field into a parsed document by key
// lookup and reports each field that could not be written.
//
// The interactive [HuhPrompter] is backed by charmbracelet/huh and falls back
// to huh's accessible, line-based mode when stdin is not a terminal.
package wizard
