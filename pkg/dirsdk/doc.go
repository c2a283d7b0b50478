// Package dirsdk is the Go client SDK for the directory service. It
// also defines the wire types and error shapes the server responds
// with, so the two sides cannot drift apart.
package dirsdk
