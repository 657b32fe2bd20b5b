package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UserToken mints per-installation identities. They partition remote records;
// they are not credentials.
type UserToken struct{}

func (UserToken) New() string {
	return "user_" + uuid.NewString()
}
