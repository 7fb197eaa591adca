// Package devmode provides shared credentials for the local fixture search
// service and the clients that talk to it.
package devmode

// Username and Password are the well-known credentials of a fresh Harbor
// install. They are accepted by the fixture server and must never be used
// against a real registry.
const (
	Username = "admin"
	Password = "Harbor12345"
)
