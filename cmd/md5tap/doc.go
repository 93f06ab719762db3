// Command md5tap streams data through a pass-through digest observer.
//
// Data flows in from files or stdin and out unchanged, while every buffer
// is fingerprinted and reported with its size. Observations can be
// persisted to a local history and browsed later, and a watch mode
// observes every new file appearing in a directory.
package main
