// Package fixture provides an in-memory accessibility tree described in YAML,
// plus a recording event poster. It backs the --fixture dry-run mode and the
// test suites of the packages that sit on top of internal/platform.
package fixture
