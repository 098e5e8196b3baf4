// Package core provides the business logic for profiling CSV files.
//
// This package contains all domain logic independent of any UI or
// transport layer. It is used by the web handlers, the CLI and tests
// without modification.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Table: the header and text cells of one file, loaded by [LoadTable]
//     with BOM skipping and UTF-8 sanitization.
//   - Profiler: turns a path into a [FileReport] (size, counts, widths,
//     inferred types and categories, describe-style statistics).
//   - Service: the entry point for transports. It applies the path policy,
//     the size limit, the concurrency limiter and the per-call timeout,
//     and records an audit entry for every request.
//   - Audit: an optional Postgres log of profile requests.
//   - Render: a report as JSON, YAML or the plain-text console layout.
//
// # Profiling
//
//	p := core.NewProfiler(0)
//	report, err := p.Profile("data/sales.csv")
//	if err != nil {
//	    var nf *core.NotFoundError
//	    if errors.As(err, &nf) { ... }
//	}
//	fmt.Print(report.Text())
//
// # Error Handling
//
// Errors are typed ([NotFoundError], [ParseError], [EmptyTableError]) or
// sentinels ([ErrPathRequired], [ErrPathNotAllowed], [ErrFileTooLarge],
// [ErrTooManyProfiles]). [MapError] turns any of them into a user-friendly
// message with a support code:
//
//   - FILE001-FILE007: File errors (size, format, missing, path policy)
//   - PRF001-PRF003: Profile errors (busy, cancelled, timeout)
//   - AUD001: Audit log not configured
//   - REQ001-REQ002, RATE001, AUTH001-AUTH002: Request errors
package core
