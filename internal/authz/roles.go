package authz

const (
	RoleUser      = "user"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

func IsKnown(role string) bool {
	switch role {
	case RoleUser, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

func IsElevated(role string) bool {
	return role == RoleAdmin
}
