// Package run drives one publishing run: resolve the release once, then
// parse, substitute and reconcile every mapping line under an ErrorPolicy.
//
// The policy is a plain value passed in through Config. Under PolicySkip a
// failed line is logged as a warning and the run continues; under
// PolicyFailFast the first failure stops the run and every line not yet
// processed is reported as skipped. Nothing is rolled back in either mode.
package run
