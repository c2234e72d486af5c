package config

// BranchPrefix is prepended to branch base names
type BranchPrefix string

// DefaultBranchPrefix is the prefix used when nothing else is configured
const DefaultBranchPrefix BranchPrefix = "wip/"

// String returns the string representation of the prefix
func (p BranchPrefix) String() string {
	return string(p)
}

// Apply returns base with the prefix prepended
func (p BranchPrefix) Apply(base string) string {
	return string(p) + base
}
