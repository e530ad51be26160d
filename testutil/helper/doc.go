// Package helper provides test doubles and assertion helpers shared by the
// duck and snapshotstore test suites: a logger spy, a metrics collector spy,
// and identity assertions for states that must be compared by reference, not
// by content.
package helper
