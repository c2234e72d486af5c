// Package git provides low-level Git operations.
//
// It wraps git command execution behind the Executor interface and provides:
//   - ShellExecutor, which spawns real processes
//   - FixedExecutor, which answers with canned results for tests
//   - Git, the branch operations used by quati (current branch, checkout, push)
//   - Repository, a go-git view used to locate the repository root
//
// This package should be the only place where git commands are executed.
package git
