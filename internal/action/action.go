// Package action defines the requests phase handlers queue against a battle.
// Actions are immutable values; the set of variants is closed.
package action

import "fmt"

// Action is one queued request. Only the variants in this package implement it.
type Action interface {
	// Actor is the formation the action belongs to.
	Actor() int
	Kind() Kind
	fmt.Stringer
	sealed()
}

// Kind names an action variant.
type Kind int

const (
	KindMove Kind = iota
	KindAttack
	KindMoraleCheck
	KindNerveRecovery
	KindWithdraw
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindAttack:
		return "attack"
	case KindMoraleCheck:
		return "morale_check"
	case KindNerveRecovery:
		return "nerve_recovery"
	case KindWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Move relocates a formation on the board.
type Move struct {
	FormationID int
	Destination int
}

// Attack fires a formation's weapons at a target formation.
type Attack struct {
	FormationID int
	TargetID    int
}

// MoraleCheck tests a formation's morale after it took damage.
type MoraleCheck struct {
	FormationID int
	// Modifier is added to the target number.
	Modifier int
}

// NerveRecovery lets a shaken formation try to steady itself.
type NerveRecovery struct {
	FormationID int
}

// Withdraw takes a formation off the field.
type Withdraw struct {
	FormationID int
	Reason      string
}

func (a Move) Actor() int          { return a.FormationID }
func (a Attack) Actor() int        { return a.FormationID }
func (a MoraleCheck) Actor() int   { return a.FormationID }
func (a NerveRecovery) Actor() int { return a.FormationID }
func (a Withdraw) Actor() int      { return a.FormationID }

func (Move) Kind() Kind          { return KindMove }
func (Attack) Kind() Kind        { return KindAttack }
func (MoraleCheck) Kind() Kind   { return KindMoraleCheck }
func (NerveRecovery) Kind() Kind { return KindNerveRecovery }
func (Withdraw) Kind() Kind      { return KindWithdraw }

func (a Move) String() string {
	return fmt.Sprintf("move formation=%d to=%d", a.FormationID, a.Destination)
}

func (a Attack) String() string {
	return fmt.Sprintf("attack formation=%d target=%d", a.FormationID, a.TargetID)
}

func (a MoraleCheck) String() string {
	return fmt.Sprintf("morale_check formation=%d mod=%d", a.FormationID, a.Modifier)
}

func (a NerveRecovery) String() string {
	return fmt.Sprintf("nerve_recovery formation=%d", a.FormationID)
}

func (a Withdraw) String() string {
	return fmt.Sprintf("withdraw formation=%d reason=%q", a.FormationID, a.Reason)
}

func (Move) sealed()          {}
func (Attack) sealed()        {}
func (MoraleCheck) sealed()   {}
func (NerveRecovery) sealed() {}
func (Withdraw) sealed()      {}
