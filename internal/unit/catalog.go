package unit

// Mek hit locations, in the order NewMek builds them.
const (
	MekHead = iota
	MekCenterTorso
	MekLeftTorso
	MekRightTorso
	MekLeftArm
	MekRightArm
	MekLeftLeg
	MekRightLeg
	mekLocations
)

var mekLocationNames = [mekLocations]string{"HD", "CT", "LT", "RT", "LA", "RA", "LL", "RL"}

// internal structure per location by tonnage class
var mekStructure = map[int][mekLocations]int{
	20:  {3, 6, 5, 5, 3, 3, 4, 4},
	25:  {3, 8, 6, 6, 4, 4, 6, 6},
	30:  {3, 10, 7, 7, 5, 5, 7, 7},
	35:  {3, 11, 8, 8, 6, 6, 8, 8},
	40:  {3, 12, 10, 10, 6, 6, 10, 10},
	45:  {3, 14, 11, 11, 7, 7, 11, 11},
	50:  {3, 16, 12, 12, 8, 8, 12, 12},
	55:  {3, 18, 13, 13, 9, 9, 13, 13},
	60:  {3, 20, 14, 14, 10, 10, 14, 14},
	65:  {3, 21, 15, 15, 10, 10, 15, 15},
	70:  {3, 22, 15, 15, 11, 11, 15, 15},
	75:  {3, 23, 16, 16, 12, 12, 16, 16},
	80:  {3, 25, 17, 17, 13, 13, 17, 17},
	85:  {3, 27, 18, 18, 14, 14, 18, 18},
	90:  {3, 29, 19, 19, 15, 15, 19, 19},
	95:  {3, 30, 20, 20, 16, 16, 20, 20},
	100: {3, 31, 21, 21, 17, 17, 21, 21},
}

func structureFor(tons int) [mekLocations]int {
	if v, ok := mekStructure[tons]; ok {
		return v
	}
	best := 20
	for t := range mekStructure {
		if t <= tons && t > best {
			best = t
		}
	}
	return mekStructure[best]
}

// DefaultCrewDeathThreshold is the crew hit count that kills a pilot.
const DefaultCrewDeathThreshold = 6

// Spec describes a unit to build. Zero values fall back to sensible defaults.
type Spec struct {
	ID          int
	Name        string
	Owner       int
	Tonnage     int
	Gunnery     int
	Movement    int
	Firepower   int
	Range       int
	DeployRound int
	// ArmorFactor scales max armor relative to internal structure. Defaults to 2.
	ArmorFactor float64
	Troopers    int
}

func (s Spec) base(c Category) *Unit {
	u := &Unit{
		ID:          s.ID,
		Name:        s.Name,
		Owner:       s.Owner,
		Category:    c,
		Tonnage:     s.Tonnage,
		Gunnery:     s.Gunnery,
		Movement:    s.Movement,
		Firepower:   s.Firepower,
		Range:       s.Range,
		DeployRound: s.DeployRound,
	}
	if u.Gunnery == 0 {
		u.Gunnery = 4
	}
	return u
}

func (s Spec) armorFor(internal int) int {
	f := s.ArmorFactor
	if f <= 0 {
		f = 2
	}
	return int(float64(internal) * f)
}

func newLocation(name string, armor, internal int, slots ...Slot) Location {
	return Location{
		Name:        name,
		Armor:       armor,
		MaxArmor:    armor,
		Internal:    internal,
		MaxInternal: internal,
		Slots:       slots,
	}
}

func slot(name string, kind SlotKind) Slot {
	return Slot{Name: name, Kind: kind, Hittable: true}
}

func repeat(name string, kind SlotKind, n int) []Slot {
	out := make([]Slot, n)
	for i := range out {
		out[i] = slot(name, kind)
	}
	return out
}

func pilot(threshold int) *Crew {
	return &Crew{Size: 1, DeathThreshold: threshold}
}

// NewMek builds an eight-location mek with internal structure from the
// tonnage table and a standard critical layout.
func NewMek(s Spec) *Unit {
	if s.Tonnage == 0 {
		s.Tonnage = 50
	}
	u := s.base(CategoryMek)
	is := structureFor(s.Tonnage)
	u.Locations = make([]Location, mekLocations)
	for i := 0; i < mekLocations; i++ {
		armor := s.armorFor(is[i])
		if i == MekHead {
			armor = 9
		}
		u.Locations[i] = newLocation(mekLocationNames[i], armor, is[i])
	}
	u.Locations[MekHead].Slots = []Slot{
		slot("Life Support", SlotLifeSupport),
		slot("Sensors", SlotEquipment),
		slot("Cockpit", SlotLifeSupport),
	}
	u.Locations[MekCenterTorso].Slots = append(
		repeat("Engine", SlotLifeSupport, 6),
		repeat("Gyro", SlotEquipment, 4)...)
	for _, loc := range []int{MekLeftTorso, MekRightTorso} {
		u.Locations[loc].Slots = append(repeat("Weapon", SlotWeapon, 2), slot("Heat Sink", SlotEquipment))
	}
	for _, loc := range []int{MekLeftArm, MekRightArm} {
		u.Locations[loc].CanBlowOff = true
		u.Locations[loc].Slots = append(repeat("Arm Actuator", SlotActuator, 2), slot("Weapon", SlotWeapon))
	}
	for _, loc := range []int{MekLeftLeg, MekRightLeg} {
		u.Locations[loc].CanBlowOff = true
		u.Locations[loc].Slots = repeat("Leg Actuator", SlotActuator, 4)
	}
	u.Crew = pilot(DefaultCrewDeathThreshold)
	u.CanEject = true
	return u
}

// Tank hit locations.
const (
	TankFront = iota
	TankLeft
	TankRight
	TankRear
	TankTurret
)

// NewTank builds a five-location vehicle. Vehicle crews cannot eject.
func NewTank(s Spec) *Unit {
	if s.Tonnage == 0 {
		s.Tonnage = 40
	}
	u := s.base(CategoryTank)
	is := (s.Tonnage + 9) / 10
	names := []string{"Front", "Left", "Right", "Rear", "Turret"}
	u.Locations = make([]Location, len(names))
	for i, n := range names {
		u.Locations[i] = newLocation(n, s.armorFor(is)*2, is)
	}
	u.Locations[TankFront].Slots = []Slot{slot("Driver", SlotLifeSupport), slot("Sensors", SlotEquipment)}
	u.Locations[TankRear].Slots = []Slot{slot("Engine", SlotLifeSupport)}
	u.Locations[TankTurret].Slots = repeat("Weapon", SlotWeapon, 3)
	u.Locations[TankTurret].CanBlowOff = true
	u.Crew = &Crew{Size: 4, DeathThreshold: DefaultCrewDeathThreshold}
	return u
}

// ProtoMek hit locations.
const (
	ProtoHead = iota
	ProtoTorso
	ProtoLeftArm
	ProtoRightArm
	ProtoLegs
	ProtoMainGun
)

// NewProtoMek builds a six-location protomek.
func NewProtoMek(s Spec) *Unit {
	if s.Tonnage == 0 {
		s.Tonnage = 5
	}
	u := s.base(CategoryProtoMek)
	is := []int{2, s.Tonnage, 1 + s.Tonnage/4, 1 + s.Tonnage/4, 1 + s.Tonnage/2, 1 + s.Tonnage/4}
	names := []string{"Head", "Torso", "Left Arm", "Right Arm", "Legs", "Main Gun"}
	u.Locations = make([]Location, len(names))
	for i, n := range names {
		u.Locations[i] = newLocation(n, s.armorFor(is[i]), is[i])
	}
	u.Locations[ProtoHead].Slots = []Slot{slot("Cockpit", SlotLifeSupport)}
	u.Locations[ProtoTorso].Slots = []Slot{slot("Engine", SlotLifeSupport), slot("Weapon", SlotWeapon)}
	u.Locations[ProtoMainGun].Slots = []Slot{slot("Main Gun", SlotWeapon)}
	for _, loc := range []int{ProtoLeftArm, ProtoRightArm, ProtoMainGun} {
		u.Locations[loc].CanBlowOff = true
	}
	u.Crew = pilot(DefaultCrewDeathThreshold)
	return u
}

// NewBattleArmor builds a squad with one location per trooper.
func NewBattleArmor(s Spec) *Unit {
	if s.Troopers == 0 {
		s.Troopers = 4
	}
	u := s.base(CategoryBattleArmor)
	u.Locations = make([]Location, s.Troopers)
	for i := range u.Locations {
		u.Locations[i] = newLocation("Trooper", s.armorFor(4), 1, slot("Weapon", SlotWeapon))
	}
	u.Troopers = s.Troopers
	u.MaxTroopers = s.Troopers
	return u
}

// NewInfantry builds a conventional platoon tracked by headcount.
func NewInfantry(s Spec) *Unit {
	if s.Troopers == 0 {
		s.Troopers = 28
	}
	u := s.base(CategoryInfantry)
	u.Troopers = s.Troopers
	u.MaxTroopers = s.Troopers
	return u
}

// NewEmplacement builds a single-location structure, such as a turret or
// bunker, whose only location is fatal when lost.
func NewEmplacement(s Spec) *Unit {
	if s.Tonnage == 0 {
		s.Tonnage = 30
	}
	u := s.base(CategoryEmplacement)
	is := (s.Tonnage + 5) / 6
	u.Locations = []Location{newLocation("Structure", s.armorFor(is), is,
		slot("Weapon", SlotWeapon), slot("Weapon", SlotWeapon), slot("Fire Control", SlotLifeSupport))}
	u.Crew = &Crew{Size: 2, DeathThreshold: DefaultCrewDeathThreshold}
	return u
}

// New builds a unit of the given category.
func New(c Category, s Spec) *Unit {
	switch c {
	case CategoryMek:
		return NewMek(s)
	case CategoryProtoMek:
		return NewProtoMek(s)
	case CategoryTank:
		return NewTank(s)
	case CategoryBattleArmor:
		return NewBattleArmor(s)
	case CategoryInfantry:
		return NewInfantry(s)
	default:
		return NewEmplacement(s)
	}
}
