package domain

// Role is the closed set of account roles
type Role string

// Known roles
const (
	RoleNone       Role = ""           // Unauthenticated caller
	RoleCustomer   Role = "customer"   // Default role after registration
	RoleDeluxe     Role = "deluxe"     // Paid membership tier
	RoleAccounting Role = "accounting" // Back-office staff
	RoleAdmin      Role = "admin"      // Administrator
)

// ParseRole converts a stored or claimed role string into a Role
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleCustomer, RoleDeluxe, RoleAccounting, RoleAdmin:
		return r, true
	default:
		return RoleNone, false
	}
}

// IsCustomer reports whether the role may buy a deluxe membership
func (r Role) IsCustomer() bool {
	switch r {
	case RoleCustomer:
		return true
	case RoleNone, RoleDeluxe, RoleAccounting, RoleAdmin:
		return false
	default:
		return false
	}
}

// IsDeluxe reports whether the role already holds a deluxe membership
func (r Role) IsDeluxe() bool {
	switch r {
	case RoleDeluxe:
		return true
	case RoleNone, RoleCustomer, RoleAccounting, RoleAdmin:
		return false
	default:
		return false
	}
}

// IsAdmin reports whether the role grants admin access
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleNone, RoleCustomer, RoleDeluxe, RoleAccounting:
		return false
	default:
		return false
	}
}

// User Model
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                                    // Primary key
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`              // Unique email address
	Password    string `gorm:"not null" json:"-"`                                       // Hashed password
	Role        Role   `gorm:"type:varchar(16);default:customer;not null" json:"role"`  // Account role
	DeluxeToken string `gorm:"size:128" json:"deluxeToken,omitempty"`                   // Last issued deluxe token
	Wallet      Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // One-to-one relationship with Wallet
	Cards       []Card `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`  // Stored payment cards
}
