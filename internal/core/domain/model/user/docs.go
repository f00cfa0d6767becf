// Package user holds the view of a caller that the ordering core needs:
// an identity and a permission set. User management itself lives outside
// this service; actors arrive already authenticated.
package user
