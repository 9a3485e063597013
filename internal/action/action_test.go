package action

import "testing"

func TestVariantsReportActorAndKind(t *testing.T) {
	cases := []struct {
		a     Action
		actor int
		kind  Kind
	}{
		{Move{FormationID: 1, Destination: 4}, 1, KindMove},
		{Attack{FormationID: 2, TargetID: 3}, 2, KindAttack},
		{MoraleCheck{FormationID: 3}, 3, KindMoraleCheck},
		{NerveRecovery{FormationID: 4}, 4, KindNerveRecovery},
		{Withdraw{FormationID: 5, Reason: "routed"}, 5, KindWithdraw},
	}
	for _, c := range cases {
		if c.a.Actor() != c.actor {
			t.Fatalf("%s: actor %d, want %d", c.a, c.a.Actor(), c.actor)
		}
		if c.a.Kind() != c.kind {
			t.Fatalf("%s: kind %s, want %s", c.a, c.a.Kind(), c.kind)
		}
	}
}

func TestStringIncludesPayload(t *testing.T) {
	got := Attack{FormationID: 2, TargetID: 7}.String()
	if got != "attack formation=2 target=7" {
		t.Fatalf("unexpected string %q", got)
	}
}
