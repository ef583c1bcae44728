// Package naming disambiguates marker and joint names across repeated
// imports into the same workspace.
package naming

import (
	"fmt"
	"strconv"
)

// JointSuffix is appended to a marker label to form its joint name; both
// forms must be collision-free for a counter to be usable.
const JointSuffix = "J"

// maxCounter bounds the probe. Realistic workspaces exhaust well below it;
// hitting the cap means a pathological name set.
const maxCounter = 9999

// ExhaustedError reports that no collision-free counter was found before
// the probe cap. Treated as a fatal abort.
type ExhaustedError struct {
	Attempted int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("naming: no collision-free counter found after %d attempts", e.Attempted)
}

// ResolveSuffix finds the smallest counter n >= 1 such that for every label
// neither label+n nor label+"J"+n collides with an existing workspace name.
// The counter is shared across all labels of one import, so every object
// created by the import carries the same suffix and can later be grouped as
// one batch. Returns the counter and the suffixed labels in input order.
func ResolveSuffix(labels []string, existing map[string]struct{}) (int, []string, error) {
	for n := 1; n <= maxCounter; n++ {
		if !collides(labels, existing, n) {
			cnt := strconv.Itoa(n)
			suffixed := make([]string, len(labels))
			for i, l := range labels {
				suffixed[i] = l + cnt
			}
			return n, suffixed, nil
		}
	}
	return 0, nil, &ExhaustedError{Attempted: maxCounter}
}

func collides(labels []string, existing map[string]struct{}, n int) bool {
	cnt := strconv.Itoa(n)
	for _, l := range labels {
		if _, ok := existing[l+cnt]; ok {
			return true
		}
		if _, ok := existing[l+JointSuffix+cnt]; ok {
			return true
		}
	}
	return false
}
