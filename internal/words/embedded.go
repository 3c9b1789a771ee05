// internal/words/embedded.go
//
// Embedded default lists.
// Wraps assets.AnswersList/AllowedList and parses them once; every caller of
// Load without file paths shares the same *List.

package words

import (
	"sync"

	"github.com/robalobadob/hardle/assets"
)

var (
	embeddedOnce sync.Once
	embeddedList *List
	embeddedErr  error
)

// embedded returns the list built from the assets package.
func embedded() (*List, error) {
	embeddedOnce.Do(func() {
		ans, err := assets.AnswersList()
		if err != nil {
			embeddedErr = err
			return
		}
		all, err := assets.AllowedList()
		if err != nil {
			embeddedErr = err
			return
		}
		embeddedList, embeddedErr = FromLists(ans, all)
	})
	return embeddedList, embeddedErr
}
