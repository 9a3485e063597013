// Package damage converts abstract damage requests into concrete unit
// mutations while honoring survival constraints.
package damage

import (
	"math/rand"

	"autoresolve-sim/internal/unit"
)

// Applier distributes damage across a unit's locations in cluster-sized
// chunks. One shared algorithm serves every category; PolicyFor supplies the
// category differences.
type Applier struct {
	rand   *rand.Rand
	tuning Tuning
}

// NewApplier returns an Applier drawing from r. Callers that need
// repeatable results must pass a seeded source and not share it across
// goroutines.
func NewApplier(r *rand.Rand, t Tuning) *Applier {
	return &Applier{rand: r, tuning: t.withDefaults()}
}

// Tuning returns the applier's policy constants.
func (a *Applier) Tuning() Tuning { return a.tuning }

// Apply applies req to u and reports what happened. A destroyed unit is
// left untouched unless req.Devastate is set.
func (a *Applier) Apply(u *unit.Unit, req Request) Outcome {
	p := PolicyFor(u.Category)
	var out Outcome

	cluster := req.ClusterSize
	if cluster <= 0 {
		cluster = a.tuning.ClusterSize
	}
	remaining := max(req.Damage, 0)

	for remaining > 0 && !u.Destroyed {
		chunk := min(cluster, remaining)
		var (
			hit HitDetails
			ok  bool
		)
		if p.Headcount {
			hit, ok = a.hitTroopers(u, chunk, req.FinalState, &out)
		} else {
			var loc int
			loc, ok = a.pickLocation(u, p, req.FinalState)
			if ok {
				hit = a.hitLocation(u, p, loc, chunk, req.FinalState, &out)
			}
		}
		if !ok {
			// nothing left to hit
			if !req.FinalState.unitMustSurvive() {
				u.MarkDestroyed(unit.RemovalDevastated)
			}
			break
		}
		remaining -= chunk
		out.Clusters++
		out.Hits = append(out.Hits, hit)
	}
	out.Discarded = remaining

	if req.Devastate {
		a.devastate(u, req.FinalState, &out)
	}
	out.Destroyed = u.Destroyed
	out.Removal = u.Removal
	return out
}

func (a *Applier) pickLocation(u *unit.Unit, p Policy, fs FinalState) (int, bool) {
	var candidates []int
	total := 0
	for i, l := range u.Locations {
		if l.Destroyed || l.BlownOff || l.Armor+l.Internal == 0 {
			continue
		}
		if fs.unitMustSurvive() && l.Armor == 0 && l.Internal <= 1 && p.lifeCritical(u, i) {
			continue
		}
		candidates = append(candidates, i)
		total += p.weight(i)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	roll := a.rand.Intn(total)
	for _, loc := range candidates {
		roll -= p.weight(loc)
		if roll < 0 {
			return loc, true
		}
	}
	return candidates[len(candidates)-1], true
}

func (a *Applier) hitLocation(u *unit.Unit, p Policy, loc, chunk int, fs FinalState, out *Outcome) HitDetails {
	hit := HitDetails{Location: loc, Damage: chunk, CriticalSlot: -1}
	critical := p.lifeCritical(u, loc)

	armor := u.Armor(loc)
	if chunk <= armor {
		u.SetArmor(loc, armor-chunk)
		out.Applied += chunk
	} else {
		u.SetArmor(loc, 0)
		out.Applied += armor
		hit.Spillover = chunk - armor
	}
	hit.ArmorAfter = u.Armor(loc)
	if p.CrewHitOnAnyHit && p.crewLocation(loc) {
		hit.CrewHits = 1
	}

	if hit.Spillover > 0 {
		hit.Penetrated = true
		internal := u.Internal(loc)
		floor := 0
		if fs.unitMustSurvive() && critical {
			floor = min(1, internal)
		}
		after := max(internal-hit.Spillover, floor)
		u.SetInternal(loc, after)
		out.Applied += internal - after

		if p.crewLocation(loc) && !p.CrewHitOnAnyHit {
			hit.CrewHits = 1
		}
		a.criticalHit(u, p, loc, fs, &hit)
		if after == 0 {
			hit.LocationDestroyed = true
			if p.crewLocation(loc) && u.Crew != nil {
				hit.CrewHits = u.Crew.DeathThreshold
			}
		}
	}

	// Crew first, so an ejection is recorded ahead of the location loss.
	out.CrewHits += a.applyCrewHits(u, hit.CrewHits, fs, out)
	if hit.LocationDestroyed {
		a.destroyLocation(u, p, loc)
	}
	return hit
}

func (a *Applier) criticalHit(u *unit.Unit, p Policy, loc int, fs FinalState, hit *HitDetails) {
	slots := u.HittableSlots(loc)
	if p.ProtectLifeSupport && (fs.unitMustSurvive() || fs.crewMustSurvive()) {
		safe := slots[:0:0]
		for _, s := range slots {
			if u.Locations[loc].Slots[s].Kind != unit.SlotLifeSupport {
				safe = append(safe, s)
			}
		}
		slots = safe
	}
	if len(slots) == 0 {
		return
	}
	s := slots[a.rand.Intn(len(slots))]
	u.DestroySlot(loc, s)
	hit.CriticalSlot = s
	if u.Locations[loc].Slots[s].Kind == unit.SlotLifeSupport && p.crewLocation(loc) {
		hit.CrewHits++
	}
}

func (a *Applier) destroyLocation(u *unit.Unit, p Policy, loc int) {
	if u.Locations[loc].CanBlowOff {
		u.BlowOff(loc)
	} else {
		u.DestroyLocation(loc)
	}
	if p.TrooperLocations && u.Troopers > 0 {
		u.Troopers--
	}
	for i := range u.Locations {
		if !u.IsLocationDestroyed(i) {
			if p.fatal(loc) {
				u.MarkDestroyed(unit.RemovalSalvageable)
			}
			return
		}
	}
	u.MarkDestroyed(unit.RemovalDevastated)
}

// applyCrewHits adds hits to the crew and returns how many were recorded.
func (a *Applier) applyCrewHits(u *unit.Unit, hits int, fs FinalState, out *Outcome) int {
	if hits <= 0 || !u.HasCrew() || !fs.crewDamageAllowed() {
		return 0
	}
	c := u.Crew
	before := c.Hits
	target := before + hits
	if target >= c.DeathThreshold {
		switch {
		case fs.crewMustSurvive() && !fs.unitMustSurvive() && u.CanEject:
			c.Ejected = true
			out.Ejected = true
			u.MarkDestroyed(unit.RemovalEjected)
			return 0
		case fs.crewMustSurvive() || fs.unitMustSurvive():
			target = max(c.DeathThreshold-a.tuning.CrewSurvivalMargin, before)
		}
	}
	u.SetCrewHits(target)
	if c.Dead {
		u.MarkDestroyed(unit.RemovalSalvageable)
	}
	return c.Hits - before
}

func (a *Applier) hitTroopers(u *unit.Unit, chunk int, fs FinalState, out *Outcome) (HitDetails, bool) {
	floor := 0
	if fs.unitMustSurvive() {
		floor = 1
	}
	lost := min(chunk, u.Troopers-floor)
	if lost <= 0 {
		return HitDetails{}, false
	}
	u.Troopers -= lost
	out.Applied += lost
	if u.Troopers == 0 {
		u.MarkDestroyed(unit.RemovalDevastated)
	}
	return HitDetails{Location: -1, Damage: lost, CriticalSlot: -1, Penetrated: true}, true
}

// devastate zeroes the unit outright. It overrides any survival constraint
// on the unit; the crew is spared only when the constraint protects it.
func (a *Applier) devastate(u *unit.Unit, fs FinalState, out *Outcome) {
	for i := range u.Locations {
		u.DestroyLocation(i)
	}
	u.Troopers = 0
	if u.HasCrew() && !fs.crewMustSurvive() {
		before := u.Crew.Hits
		u.SetCrewHits(before + a.rand.Intn(6) + 1)
		out.CrewHits += u.Crew.Hits - before
	}
	u.Destroyed = true
	u.Removal = unit.RemovalDevastated
}
