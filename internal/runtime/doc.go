// Package runtime provides the execution context for quati commands.
//
// It encapsulates shared dependencies needed by actions, such as the git
// wrapper, the logger, the loaded configuration and the repository root.
package runtime
