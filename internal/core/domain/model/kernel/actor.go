package kernel

// Role is the privilege level of a caller.
type Role int

const (
	RoleAnonymous Role = iota
	RoleCustomer
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Actor identifies who performs an operation. Authentication happens upstream;
// the core only consumes the resolved identity. The zero value is anonymous.
type Actor struct {
	userID *UUID
	role   Role
}

func NewAnonymousActor() Actor {
	return Actor{role: RoleAnonymous}
}

func NewCustomerActor(userID UUID) Actor {
	return Actor{userID: &userID, role: RoleCustomer}
}

func NewAdminActor(userID UUID) Actor {
	return Actor{userID: &userID, role: RoleAdmin}
}

// UserID returns the caller id; ok is false for anonymous callers.
func (a Actor) UserID() (UUID, bool) {
	if a.userID == nil {
		return UUID{}, false
	}
	return *a.userID, true
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAnonymous() bool {
	return a.userID == nil
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin && a.userID != nil
}

// Owns reports whether the caller is the given owner.
func (a Actor) Owns(ownerID UUID) bool {
	return a.userID != nil && a.userID.IsEqual(ownerID)
}
