// Package failure models the write-only error log of the ordering core.
// A Record is written whenever a lifecycle operation is refused or fails in
// a way the user should be able to see later, such as a capacity rejection.
package failure
