package domain

// Category is the product line an agent supports.
type Category string

const (
	CategoryInventory Category = "QTech Inventory Support System"
	CategoryBilling   Category = "QTech Utility Billing System"
	CategoryPayroll   Category = "Philippine HR, Payroll and Time Keeping System"
	CategoryPOS       Category = "POS for Retail and F&B"
	CategoryQSA       Category = "QSA (Quick and Single Accounting)"
)

var categories = []Category{
	CategoryInventory,
	CategoryBilling,
	CategoryPayroll,
	CategoryPOS,
	CategoryQSA,
}

// Categories returns the supported product lines in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the supported product lines.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// RoleAgent is the only role assigned by the agent screen.
const RoleAgent = "agent"

// Agent is a support-staff account as returned by the backend.
type Agent struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Role     string `json:"role,omitempty"`
}

// Registration is the payload for creating an agent account.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Category             string `json:"category"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// AgentUpdate carries the editable agent fields.
type AgentUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

// Apply returns a copy of a with the update merged in.
func (u AgentUpdate) Apply(a Agent) Agent {
	a.Name = u.Name
	a.Email = u.Email
	a.Category = u.Category
	return a
}
