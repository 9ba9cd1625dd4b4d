package game

// AvailablePositions lists the finish positions the elimination picker may
// offer: 1..fieldSize minus the positions already claimed by recorded
// eliminations. Consistency with the remaining active player count is the
// server's problem; the client only removes taken slots.
func AvailablePositions(fieldSize int, eliminations []Elimination) []int {
	if fieldSize <= 0 {
		return nil
	}

	taken := make(map[int]struct{}, len(eliminations))
	for _, e := range eliminations {
		taken[e.FinishPosition] = struct{}{}
	}

	out := make([]int, 0, fieldSize)
	for pos := 1; pos <= fieldSize; pos++ {
		if _, ok := taken[pos]; ok {
			continue
		}
		out = append(out, pos)
	}
	return out
}
