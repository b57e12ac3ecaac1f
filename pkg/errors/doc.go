// Package errors provides coded errors for bundlechain.
//
// Configuration problems (unreadable config files, unresolvable browser
// targets, malformed copy patterns) surface as ErrConfig* codes. Together
// with bad flags and unknown plugins they are usage errors and make the
// command exit with ExitUsage. Hook failures are attributed to their plugin
// with InPlugin. Filesystem probes made while pruning plugins do not produce
// errors at all; see filesystem.Exists.
package errors
