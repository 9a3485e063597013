// Package unit holds the in-game object model used by the battle engine:
// per-location armor and internal structure, critical slots and crew.
package unit

// Slot is one critical slot in a location.
type Slot struct {
	Name      string
	Kind      SlotKind
	Hittable  bool
	Destroyed bool
}

// Location is one hit location of a unit.
type Location struct {
	Name        string
	Armor       int
	Internal    int
	MaxArmor    int
	MaxInternal int
	CanBlowOff  bool
	BlownOff    bool
	Destroyed   bool
	Slots       []Slot
}

// Crew tracks hits against the unit's pilot or crew.
type Crew struct {
	Size           int
	Hits           int
	DeathThreshold int
	Ejected        bool
	Dead           bool
}

// Unit is any participant in a battle.
type Unit struct {
	ID          int
	Name        string
	Owner       int
	Category    Category
	Tonnage     int
	Locations   []Location
	Crew        *Crew
	CanEject    bool
	DeployRound int
	Deployed    bool

	// Infantry are tracked by headcount instead of locations.
	Troopers    int
	MaxTroopers int

	Gunnery   int
	Movement  int
	Firepower int
	Range     int

	Destroyed bool
	Removal   Removal
}

// LocationCount returns the number of hit locations.
func (u *Unit) LocationCount() int { return len(u.Locations) }

func (u *Unit) valid(loc int) bool { return loc >= 0 && loc < len(u.Locations) }

// Armor returns the armor remaining at loc, or 0 for an invalid location.
func (u *Unit) Armor(loc int) int {
	if !u.valid(loc) {
		return 0
	}
	return u.Locations[loc].Armor
}

// Internal returns the internal structure remaining at loc.
func (u *Unit) Internal(loc int) int {
	if !u.valid(loc) {
		return 0
	}
	return u.Locations[loc].Internal
}

// SetArmor sets armor at loc, clamped to [0, max].
func (u *Unit) SetArmor(loc, v int) {
	if !u.valid(loc) {
		return
	}
	l := &u.Locations[loc]
	l.Armor = clamp(v, 0, l.MaxArmor)
}

// SetInternal sets internal structure at loc, clamped to [0, max].
func (u *Unit) SetInternal(loc, v int) {
	if !u.valid(loc) {
		return
	}
	l := &u.Locations[loc]
	l.Internal = clamp(v, 0, l.MaxInternal)
}

// DestroyLocation zeroes the location and destroys every slot in it.
func (u *Unit) DestroyLocation(loc int) {
	if !u.valid(loc) {
		return
	}
	l := &u.Locations[loc]
	l.Armor = 0
	l.Internal = 0
	l.Destroyed = true
	for i := range l.Slots {
		l.Slots[i].Destroyed = true
	}
}

// BlowOff removes a location that can be blown off.
func (u *Unit) BlowOff(loc int) {
	if !u.valid(loc) || !u.Locations[loc].CanBlowOff {
		return
	}
	u.DestroyLocation(loc)
	u.Locations[loc].BlownOff = true
}

// IsLocationDestroyed reports whether loc is gone.
func (u *Unit) IsLocationDestroyed(loc int) bool {
	if !u.valid(loc) {
		return true
	}
	l := u.Locations[loc]
	return l.Destroyed || l.BlownOff
}

// HittableSlots returns the indices of intact hittable slots at loc.
func (u *Unit) HittableSlots(loc int) []int {
	if !u.valid(loc) {
		return nil
	}
	var idx []int
	for i, s := range u.Locations[loc].Slots {
		if s.Hittable && !s.Destroyed {
			idx = append(idx, i)
		}
	}
	return idx
}

// DestroySlot marks a slot destroyed. Repeated calls are no-ops.
func (u *Unit) DestroySlot(loc, slot int) {
	if !u.valid(loc) || slot < 0 || slot >= len(u.Locations[loc].Slots) {
		return
	}
	u.Locations[loc].Slots[slot].Destroyed = true
}

// HasIntactLifeSupport reports whether loc still carries an intact life-critical slot.
func (u *Unit) HasIntactLifeSupport(loc int) bool {
	if !u.valid(loc) {
		return false
	}
	for _, s := range u.Locations[loc].Slots {
		if s.Kind == SlotLifeSupport && !s.Destroyed {
			return true
		}
	}
	return false
}

// HasCrew reports whether the unit carries a crew that can still be hurt.
func (u *Unit) HasCrew() bool {
	return u.Crew != nil && !u.Crew.Ejected && !u.Crew.Dead
}

// SetCrewHits sets the crew hit counter, clamped to the death threshold.
func (u *Unit) SetCrewHits(h int) {
	if u.Crew == nil {
		return
	}
	u.Crew.Hits = clamp(h, 0, u.Crew.DeathThreshold)
	if u.Crew.Hits >= u.Crew.DeathThreshold {
		u.Crew.Dead = true
	}
}

// MarkDestroyed flags the unit as destroyed for the given reason. The first
// reason recorded wins.
func (u *Unit) MarkDestroyed(r Removal) {
	if u.Destroyed {
		return
	}
	u.Destroyed = true
	u.Removal = r
}

// CurrentHealth is the armor and structure (or headcount) left.
func (u *Unit) CurrentHealth() int {
	if u.Category == CategoryInfantry {
		return u.Troopers
	}
	total := 0
	for _, l := range u.Locations {
		total += l.Armor + l.Internal
	}
	return total
}

// MaxHealth is the undamaged armor and structure (or headcount).
func (u *Unit) MaxHealth() int {
	if u.Category == CategoryInfantry {
		return u.MaxTroopers
	}
	total := 0
	for _, l := range u.Locations {
		total += l.MaxArmor + l.MaxInternal
	}
	return total
}

// HealthFraction returns CurrentHealth/MaxHealth, or 0 for an empty unit.
func (u *Unit) HealthFraction() float64 {
	m := u.MaxHealth()
	if m == 0 {
		return 0
	}
	return float64(u.CurrentHealth()) / float64(m)
}

// EffectiveFirepower scales firepower by the share of weapon slots still intact.
// Infantry scale by surviving troopers.
func (u *Unit) EffectiveFirepower() int {
	if u.Destroyed {
		return 0
	}
	if u.Category == CategoryInfantry {
		if u.MaxTroopers == 0 {
			return 0
		}
		return u.Firepower * u.Troopers / u.MaxTroopers
	}
	weapons, intact := 0, 0
	for _, l := range u.Locations {
		for _, s := range l.Slots {
			if s.Kind != SlotWeapon {
				continue
			}
			weapons++
			if !s.Destroyed {
				intact++
			}
		}
	}
	if weapons == 0 {
		return u.Firepower
	}
	return u.Firepower * intact / weapons
}

// Clone returns a deep copy.
func (u *Unit) Clone() *Unit {
	c := *u
	c.Locations = make([]Location, len(u.Locations))
	for i, l := range u.Locations {
		c.Locations[i] = l
		c.Locations[i].Slots = append([]Slot(nil), l.Slots...)
	}
	if u.Crew != nil {
		crew := *u.Crew
		c.Crew = &crew
	}
	return &c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
