// Package updater implements "mortar version upgrade". The CLI is upgraded by
// downloading the hosted installer script and running it with sudo, which is
// only supported on macOS. The installer location can be overridden with
// MORTAR_INSTALL for testing against a development server.
package updater
