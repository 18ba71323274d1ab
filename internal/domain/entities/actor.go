package entities

type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

// Actor is the caller on whose behalf an operation runs.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemActor is recorded on transitions driven by payment verification.
func SystemActor() Actor {
	return Actor{UserID: "system", Role: RoleSystem}
}
