package game

// Score counts how many letters of guess can be paired one-to-one with
// letters of answer, ignoring position. Non A–Z bytes never match.
//
// The answer's letters are tallied into a [26]int, then each guess letter
// consumes one unit of its tally if any is left. Because every letter is
// interchangeable with its own copies, this greedy pass is the size of a
// maximum matching between the two letter multisets.
func Score(guess, answer string) int {
	var counts [26]int
	for i := 0; i < len(answer); i++ {
		if j := idx(answer[i]); j >= 0 {
			counts[j]++
		}
	}

	score := 0
	for i := 0; i < len(guess); i++ {
		j := idx(guess[i])
		if j >= 0 && counts[j] > 0 {
			score++
			counts[j]--
		}
	}
	return score
}

// idx maps an uppercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
