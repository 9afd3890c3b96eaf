// Package doctor runs the diagnostic checks behind 'mortar doctor'. Each
// check writes one status line per item and returns the number of problems
// it left unresolved.
package doctor
