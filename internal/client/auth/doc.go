// Package auth owns the session state of the client: whether a verification
// is pending, whether the user is signed in, and who they are. It also
// provides the route guard that protects pages requiring a session.
//
// State changes only through Authenticate and LogOut. Every Authenticate call
// takes a fresh sequence number and applies its result only if no newer call
// (or a LogOut) was issued in the meantime.
package auth
