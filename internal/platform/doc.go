// Package platform provides the filesystem permission handling used for
// files that hold credentials. On Windows permission changes are skipped.
package platform
