package quadchego

// Repetitions scans history (in playing order) and returns the position that
// occurs most often together with its occurrence count, using Position.Equal
// (qbb+color+flags, ignoring clocks) per FIDE Article 9.2 — so two positions
// reached with different halfmove clocks or move numbers still count as the
// same occurrence. Ties are broken by earliest-occurring position, which
// keeps the result deterministic. ok is false only if history is empty.
func Repetitions(history []Position) (count int, position Position, ok bool) {
	counted := make([]bool, len(history))

	for i, p := range history {
		if counted[i] {
			continue
		}
		n := 0
		for j := i; j < len(history); j++ {
			if history[j].Equal(p) {
				counted[j] = true
				n++
			}
		}
		if n > count {
			count, position, ok = n, p, true
		}
	}

	return count, position, ok
}

// IsThreefoldRepetition reports whether any position in history has occurred
// at least three times.
func IsThreefoldRepetition(history []Position) bool {
	count, _, ok := Repetitions(history)
	return ok && count >= 3
}

// IsFiftyMoveRule reports whether pos's halfmove clock has reached the
// 50-move (100-halfmove) threshold without a pawn move or capture.
func IsFiftyMoveRule(pos Position) bool {
	return pos.HalfMoveClock >= 100
}
