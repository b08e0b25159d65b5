// Package cli implements the vodeposit command-line interface.
//
// # Commands
//
// validate - report every error in one or more files:
//
//	vodeposit validate --type continuum-island [--constraints FILE] [--image NAME]...
//	                   [--fail-on-error] [--output FILE] [--format yaml|json|table]
//	                   [--metrics-file FILE] FILE...
//
// Runs in collect-all mode and writes one report per file. Files are checked
// concurrently up to defaults.MaxConcurrentFiles. The command succeeds even
// when files fail unless --fail-on-error is set.
//
// import - convert one file, stopping at the first error:
//
//	vodeposit import --type continuum-component [--constraints FILE] [--image NAME]...
//	                 [--output FILE] [--format yaml|json|table] [--metrics-file FILE] FILE
//
// Writes the typed catalogue. A rejected file exits non-zero with the first
// positioned error, for example:
//
//	Error in 6th TD (FIELD 'ra_deg_cont') of 2nd TR : Value '187.7301371' is more precise than 6 decimal places
//
// types - list the supported catalogue types:
//
//	vodeposit types [--format yaml|json|table]
//
// # Global Flags
//
//	--log-level    debug, info, warn or error (env LOG_LEVEL, default info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Logs are JSON on stderr; command output goes to --output or stdout.
package cli
