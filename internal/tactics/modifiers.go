package tactics

// ShortRange is the end of the short range band for a weapon reaching
// maxRange.
func ShortRange(maxRange int) int {
	return max(maxRange/3, 1)
}

// RangeModifier returns the to-hit penalty for firing across distance, and
// false when the target is out of reach.
func RangeModifier(distance, maxRange int) (int, bool) {
	switch {
	case distance > maxRange:
		return 0, false
	case distance <= ShortRange(maxRange):
		return 0, true
	case distance <= 2*maxRange/3:
		return 2, true
	default:
		return 4, true
	}
}

// MovementModifier is the penalty for firing on a unit that moves
// movement cells per round.
func MovementModifier(movement int) int {
	return min(max(movement, 0)/3, 4)
}

// TargetNumber is the 2d6 roll needed to hit, and false when the target is
// out of reach.
func TargetNumber(gunnery, distance, maxRange, targetMovement int) (int, bool) {
	rm, ok := RangeModifier(distance, maxRange)
	if !ok {
		return 0, false
	}
	return gunnery + rm + MovementModifier(targetMovement), true
}
