// Package project turns the remotes of a local repository into the single
// hosted project a command should act on.
//
// Extract keeps the remotes whose URL follows the hosted naming convention
// (<git-organization>/<org-id>_<project>.git) and yields one Candidate per
// alias. Choose applies the disambiguation order: an explicit --remote, then
// a lone candidate, then the stored preferred remote. Resolver wires both to
// a live repository.
package project
