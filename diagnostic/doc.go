// Package diagnostic provides structured errors, warnings and infos produced
// while validating binding configurations before they go live.
//
// Key capabilities:
//   - Invalid configuration errors (empty target path, missing element name)
//   - Unresolved property warnings with "did you mean" suggestions
//   - Read-only destination warnings
//   - Unknown converter reports
package diagnostic
