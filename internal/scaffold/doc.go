// Package scaffold generates a new project directory from embedded
// templates. It powers "mortar generate project", producing the pigscripts,
// macros, and Python UDF layout with files named after the project.
package scaffold
