// Package preflight gates a setup run on host capacity and free web ports.
//
// [CheckResources] turns a [host.Resources] snapshot into warnings (low
// memory, low swap) and one fatal condition (low disk). [CheckPorts] fails
// when any required port already has a listener. The Write* helpers print
// the operator guidance for each finding.
package preflight
