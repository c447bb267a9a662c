// This package contains all the prefix command handlers
//
// There should be 2 functions per handler, one for registering the command
// on the muxer (public), and one returning the actual run function
// (private).
//
// Only return errors when it's the backend's fault, nil if user's fault.
// Whatever does come back lands in the dispatcher in error_handler.go.
package handler
