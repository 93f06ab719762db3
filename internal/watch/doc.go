// Package watch runs the tap as a long-lived service over a directory.
//
// A Watcher listens for new files, waits for them to stop growing, then
// streams each one through the digest observer, recording the run and its
// observations in the history store. Files are never moved, renamed, or
// modified; watching is strictly observational, like the rest of md5tap.
package watch
