// Package testhelpers provides testing utilities for the quati CLI,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	branches, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")

	sort.Strings(branches)
	sorted := append([]string(nil), expected...)
	sort.Strings(sorted)

	require.Equal(t, sorted, branches, "Branches do not match")
}

// ExpectCurrentBranch asserts that HEAD is on branch.
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, branch string) {
	t.Helper()

	current, err := repo.CurrentBranchName()
	require.NoError(t, err, "Failed to read current branch")
	require.Equal(t, branch, current, "Unexpected current branch")
}

// ExpectRemoteBranch asserts whether the scene's remote has branch.
func ExpectRemoteBranch(t *testing.T, scene *Scene, branch string, present bool) {
	t.Helper()

	require.NotEmpty(t, scene.RemoteDir, "scene has no remote")
	require.Equal(t, present, RemoteHasBranch(scene.RemoteDir, branch), "remote branch %s presence", branch)
}
