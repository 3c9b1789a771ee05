// internal/deduce/engine.go
//
// Deduction engine for score-only feedback.
// Given every submitted (word, score) pair it proves, without sampling any
// candidate answer:
//   - per tile: whether the letter is part of the matched multiset (Correct)
//     or not (Incorrect);
//   - per letter: a tightened [Min, Max] occurrence range.
//
// Tile meaning with repeated letters:
//   If a row holds k copies of L and the answer holds n, the leftmost min(k, n)
//   copies are the matched ones, the same order the score function consumes
//   them. Every rule below marks tiles under that convention.
//
// Each run starts from scratch and loops the rule phases over all rows until a
// pass changes nothing. Rules only ever set unset marks and tighten bounds, so
// the loop converges; MaxPasses is a backstop.

package deduce

import "github.com/rs/zerolog/log"

// MaxPasses bounds the fixpoint loop.
const MaxPasses = 50

// Mark is a tri-state tile annotation.
type Mark string

const (
	MarkNone      Mark = ""
	MarkIncorrect Mark = "incorrect"
	MarkCorrect   Mark = "correct"
)

// Valid reports whether m is one of the defined marks.
func (m Mark) Valid() bool {
	return m == MarkNone || m == MarkIncorrect || m == MarkCorrect
}

// Row is one submitted guess and its revealed score.
type Row struct {
	Word  string // uppercase A–Z, WordLen letters
	Score int    // 0..WordLen
}

// Result is the output of a run.
type Result struct {
	Dots   [][WordLen]Mark // one entry per input row
	Bounds Bounds
	Passes int
}

// Run deduces tile marks and letter bounds from rows.
// Rows that are not WordLen uppercase letters with a score in range are skipped.
func Run(rows []Row) Result {
	s := &solver{
		rows:   rows,
		dots:   make([][WordLen]Mark, len(rows)),
		bounds: NewBounds(),
	}

	passes := 0
	for passes < MaxPasses {
		passes++
		s.changed = false
		for r := range s.rows {
			if !validRow(s.rows[r]) {
				continue
			}
			s.applyLetterBounds(r)
			s.saturateRow(r)
			s.resolveContributions(r)
			s.learnBounds(r)
		}
		s.applyCapacity()
		if !s.changed {
			break
		}
	}
	if s.changed {
		log.Warn().Int("rows", len(rows)).Int("passes", passes).Msg("deduce: pass cap reached before fixpoint")
	}
	return Result{Dots: s.dots, Bounds: s.bounds, Passes: passes}
}

type solver struct {
	rows    []Row
	dots    [][WordLen]Mark
	bounds  Bounds
	changed bool
}

// letterGroup is one distinct letter of a row and its columns, left to right.
type letterGroup struct {
	idx  int
	cols []int
}

// groups splits a row into distinct letters in first-appearance order.
func groups(word string) []letterGroup {
	var out []letterGroup
	for c := 0; c < WordLen; c++ {
		i := Index(word[c])
		found := false
		for g := range out {
			if out[g].idx == i {
				out[g].cols = append(out[g].cols, c)
				found = true
				break
			}
		}
		if !found {
			out = append(out, letterGroup{idx: i, cols: []int{c}})
		}
	}
	return out
}

func validRow(r Row) bool {
	if len(r.Word) != WordLen || r.Score < 0 || r.Score > WordLen {
		return false
	}
	for i := 0; i < WordLen; i++ {
		if Index(r.Word[i]) < 0 {
			return false
		}
	}
	return true
}

func (s *solver) set(r, c int, m Mark) {
	if s.dots[r][c] != MarkNone {
		return
	}
	s.dots[r][c] = m
	s.changed = true
}

func (s *solver) raiseMin(i, v int) {
	if s.bounds.raiseMin(i, v) {
		s.changed = true
	}
}

func (s *solver) lowerMax(i, v int) {
	if s.bounds.lowerMax(i, v) {
		s.changed = true
	}
}

func (s *solver) count(r int, cols []int, m Mark) int {
	n := 0
	for _, c := range cols {
		if s.dots[r][c] == m {
			n++
		}
	}
	return n
}

// contribRange is the [min, max] number of matched tiles letter group g can
// supply to its row under the current bounds.
func (s *solver) contribRange(g letterGroup) (int, int) {
	k := len(g.cols)
	return min(s.bounds.Min[g.idx], k), min(s.bounds.Max[g.idx], k)
}

// applyLetterBounds (phase 1): a letter with Max = m can have at most m matched
// copies in any row; the surplus unmarked copies, rightmost first, are Incorrect.
func (s *solver) applyLetterBounds(r int) {
	for _, g := range groups(s.rows[r].Word) {
		slots := s.bounds.Max[g.idx] - s.count(r, g.cols, MarkCorrect)
		if slots < 0 {
			slots = 0
		}
		var unmarked []int
		for _, c := range g.cols {
			if s.dots[r][c] == MarkNone {
				unmarked = append(unmarked, c)
			}
		}
		for excess := len(unmarked) - slots; excess > 0; excess-- {
			s.set(r, unmarked[len(unmarked)-excess], MarkIncorrect)
		}
	}
}

// saturateRow (phase 2): once the row's score is accounted for by Correct
// marks, the rest are Incorrect, and vice versa.
func (s *solver) saturateRow(r int) {
	all := []int{0, 1, 2, 3}
	score := s.rows[r].Score
	correct := s.count(r, all, MarkCorrect)
	incorrect := s.count(r, all, MarkIncorrect)

	var fill Mark
	switch {
	case correct == score:
		fill = MarkIncorrect
	case incorrect == WordLen-score:
		fill = MarkCorrect
	default:
		return
	}
	for _, c := range all {
		s.set(r, c, fill)
	}
}

// resolveContributions (phase 3): when the row's lower (or upper) contribution
// bounds sum exactly to the score, every letter sits at that bound.
func (s *solver) resolveContributions(r int) {
	gs := groups(s.rows[r].Word)
	lo, hi := 0, 0
	for _, g := range gs {
		a, b := s.contribRange(g)
		lo += a
		hi += b
	}

	score := s.rows[r].Score
	useMin := lo == score
	if !useMin && hi != score {
		return
	}
	for _, g := range gs {
		a, b := s.contribRange(g)
		n := b
		if useMin {
			n = a
		}
		for j, c := range g.cols {
			if j < n {
				s.set(r, c, MarkCorrect)
			} else {
				s.set(r, c, MarkIncorrect)
			}
		}
	}
}

// learnBounds (phase 4) feeds what a row proves back into the letter bounds.
func (s *solver) learnBounds(r int) {
	score := s.rows[r].Score
	gs := groups(s.rows[r].Word)

	for _, g := range gs {
		k := len(g.cols)
		if score == 0 {
			s.lowerMax(g.idx, 0)
		}
		if k > score {
			s.lowerMax(g.idx, score)
		}
		if k == WordLen {
			s.raiseMin(g.idx, score)
			s.lowerMax(g.idx, score)
		}

		// Matched copies are the leftmost ones, so each Correct mark is one
		// more proven copy and an Incorrect mark on the j-th copy caps the
		// count at j. A fully resolved letter with any miss is pinned exactly.
		s.raiseMin(g.idx, s.count(r, g.cols, MarkCorrect))
		for j, c := range g.cols {
			if s.dots[r][c] == MarkIncorrect {
				s.lowerMax(g.idx, j)
				break
			}
		}
	}

	pinned, free := 0, -1
	for gi, g := range gs {
		a, b := s.contribRange(g)
		if a == b {
			pinned += a
			continue
		}
		if free >= 0 {
			return
		}
		free = gi
	}
	if free < 0 {
		return
	}

	g := gs[free]
	need := score - pinned
	a, b := s.contribRange(g)
	if need < a || need > b {
		return
	}
	s.raiseMin(g.idx, need)
	// A letter contributing all of its copies may still occur more often.
	if need < len(g.cols) {
		s.lowerMax(g.idx, need)
	}
}

// applyCapacity (extra phase): the answer has exactly WordLen letters, so each
// letter's range is limited by what the others are proven to take or leave.
func (s *solver) applyCapacity() {
	sumMin, sumMax := 0, 0
	for i := 0; i < 26; i++ {
		sumMin += s.bounds.Min[i]
		sumMax += s.bounds.Max[i]
	}
	for i := 0; i < 26; i++ {
		s.lowerMax(i, WordLen-(sumMin-s.bounds.Min[i]))
		s.raiseMin(i, WordLen-(sumMax-s.bounds.Max[i]))
	}
}
