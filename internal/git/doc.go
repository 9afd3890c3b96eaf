// Package git reads the parts of a local git repository that project
// resolution depends on: whether the working directory is a repository at
// all, the configured remotes as reported by `git remote -v`, and the
// repository-local preferred remote stored under mortar.remote.
package git
