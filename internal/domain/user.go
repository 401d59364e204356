package domain

// Role selects the navigation set and gates screens.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "agent"
	RoleCustomer Role = "user"
)

// User is the signed-in principal handed over by the authentication service.
type User struct {
	ID   ID
	Name string
	Role Role
}
