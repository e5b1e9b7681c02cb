package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Staff reports whether the role may use the back office.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Session is the signed-in user of the current client.
type Session struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
