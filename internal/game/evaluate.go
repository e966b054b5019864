package game

// Score is the feedback for one guess against a secret.
type Score struct {
	// CorrectCount counts guessed digit values present in the secret,
	// with multiset multiplicity: min(occurrences in secret, occurrences
	// in guess) summed per digit. Position matches are included.
	CorrectCount int
	// CorrectPosition counts digits matching both value and position.
	// Always <= CorrectCount.
	CorrectPosition int
}

// Evaluate scores guess against secret. Both must already be valid 4-digit
// strings. Repeated digits never double-count: secret "1123" vs guess
// "1111" gives CorrectCount=2, CorrectPosition=1.
func Evaluate(secret, guess string) Score {
	var s Score
	var cntS, cntG [10]int

	for i := 0; i < 4; i++ {
		if secret[i] == guess[i] {
			s.CorrectPosition++
		}
		cntS[secret[i]-'0']++
		cntG[guess[i]-'0']++
	}

	for d := 0; d < 10; d++ {
		if cntS[d] < cntG[d] {
			s.CorrectCount += cntS[d]
		} else {
			s.CorrectCount += cntG[d]
		}
	}

	return s
}

func valid4Digits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
