package models

// Role weights form the total order used by the authorization layer.
// Higher weight always implies every right of a lower weight.
const (
	WeightUser          = 0
	WeightAuthor        = 1
	WeightManager       = 2
	WeightAdministrator = 3
)

type Role struct {
	Base
	Name   string `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}

// DefaultRoles is the fixed enumeration seeded at startup, in weight order.
func DefaultRoles() []Role {
	return []Role{
		{Name: "USER", Weight: WeightUser},
		{Name: "AUTHOR", Weight: WeightAuthor},
		{Name: "MANAGER", Weight: WeightManager},
		{Name: "ADMINISTRATOR", Weight: WeightAdministrator},
	}
}
