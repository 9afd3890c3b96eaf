// Package logging builds the zap logger used across the CLI.
//
// Diagnostics go to stderr with a console encoder so they never mix with
// command output on stdout. The default level is warn; --verbose lowers it
// to debug, and MORTAR_LOG_LEVEL selects any zap level by name.
//
//	logger, err := logging.New(logging.Options{Verbose: true})
//	ctx = logging.WithLogger(ctx, logger)
//	logging.FromContext(ctx).Debug("listing remotes", zap.String("dir", dir))
package logging
