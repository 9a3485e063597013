package unit

// Category identifies the kind of unit. Damage policy dispatches on it.
type Category int

const (
	CategoryEmplacement Category = iota
	CategoryMek
	CategoryProtoMek
	CategoryTank
	CategoryBattleArmor
	CategoryInfantry
)

func (c Category) String() string {
	switch c {
	case CategoryEmplacement:
		return "emplacement"
	case CategoryMek:
		return "mek"
	case CategoryProtoMek:
		return "protomek"
	case CategoryTank:
		return "tank"
	case CategoryBattleArmor:
		return "battle_armor"
	case CategoryInfantry:
		return "infantry"
	default:
		return "unknown"
	}
}

// ParseCategory maps a scenario string to a Category.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryEmplacement; c <= CategoryInfantry; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return CategoryEmplacement, false
}

// Removal is the coarse reason a unit left the battle.
type Removal int

const (
	RemovalNone Removal = iota
	RemovalRetreating
	RemovalCaptured
	RemovalEjected
	RemovalDevastated
	RemovalSalvageable
	RemovalOther
)

func (r Removal) String() string {
	switch r {
	case RemovalNone:
		return "none"
	case RemovalRetreating:
		return "retreating"
	case RemovalCaptured:
		return "captured"
	case RemovalEjected:
		return "ejected"
	case RemovalDevastated:
		return "devastated"
	case RemovalSalvageable:
		return "salvageable"
	default:
		return "other"
	}
}

// ParseRemoval maps a config string to a Removal.
func ParseRemoval(s string) (Removal, bool) {
	for r := RemovalNone; r <= RemovalOther; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return RemovalNone, false
}

// SlotKind tells the damage code what losing a critical slot means.
type SlotKind int

const (
	SlotEquipment SlotKind = iota
	SlotWeapon
	SlotLifeSupport
	SlotActuator
)
