package access

// Permission is the right a token grants.
type Permission uint8

const (
	// Ref grants shared read access.
	Ref Permission = iota
	// Mut grants exclusive write access.
	Mut
)

// String returns a string representation of the permission.
func (p Permission) String() string {
	if p == Mut {
		return "mut"
	}
	return "ref"
}
