// Package operators implements the standard content-stream operator
// set as interpreter handlers. RegisterStandard installs all of them;
// callers needing custom behavior can re-register individual
// operators afterwards.
package operators
