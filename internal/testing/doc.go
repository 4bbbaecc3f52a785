// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - DeploymentBuilder: Fluent builder for operator answers
//   - StandaloneTemplate / WriteTemplate: the stock container template
//   - MockHost: testify mock of host.Host
//   - ScriptedPrompter: answers wizard questions from a fixed script
//
// Usage:
//
//	d := testing.NewDeploymentBuilder().
//	    WithHostname("forum.example.org").
//	    Build()
//
//	h := testing.NewMockHost().WithResources(4096, 2048, 40000, 4)
package testing
