package engine

// Role identifies a once-per-round selectable action category.
type Role int

const (
	RoleNone       Role = 0
	RoleBuilder    Role = 1
	RoleProducer   Role = 2
	RoleTrader     Role = 3
	RoleCouncilor  Role = 4
	RoleProspector Role = 5
)

var roleNames = map[Role]string{
	RoleNone:       "None",
	RoleBuilder:    "Builder",
	RoleProducer:   "Producer",
	RoleTrader:     "Trader",
	RoleCouncilor:  "Councilor",
	RoleProspector: "Prospector",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// ParseRole maps a role name back to its value. Unknown names return RoleNone.
func ParseRole(name string) Role {
	for r, s := range roleNames {
		if s == name {
			return r
		}
	}
	return RoleNone
}

// AllRoles returns the five roles in table order.
func AllRoles() []Role {
	return []Role{RoleBuilder, RoleProducer, RoleTrader, RoleCouncilor, RoleProspector}
}

// RoleSlot is a role card on the table. Bonus coins pile up while it goes unchosen.
type RoleSlot struct {
	Role       Role `json:"role"`
	Available  bool `json:"available"`
	BonusCoins int  `json:"bonus_coins"`
}
