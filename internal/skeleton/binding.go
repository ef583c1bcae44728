package skeleton

import (
	"fmt"
	"strings"
)

// Binding associates a joint with the marker data that positions it: either
// a directly observed marker label, or the synthesis inputs when no direct
// marker exists. Bindings are recomputed per import since marker
// availability differs file to file.
type Binding struct {
	Node    *Node
	Marker  string   // direct marker label, empty when synthesized
	Average []string // synthesis inputs, nil for direct bindings
}

// Direct reports whether the binding reads a single marker.
func (b Binding) Direct() bool {
	return b.Marker != ""
}

// BindingError reports a joint that cannot be positioned from the table:
// no direct marker and no usable synthesis rule. The reconstruction phase
// fails; a silently misplaced joint is worse than a hard failure.
type BindingError struct {
	Joint   string
	Missing []string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("skeleton: joint %q has no marker data (missing %s)",
		e.Joint, strings.Join(e.Missing, ", "))
}

// ResolveBindings maps every joint of the tree to its marker data, in
// pre-order. A joint binds its normalized marker label directly when the
// table has it; otherwise its synthesis rule applies if every input marker
// is present.
func ResolveBindings(root *Node, labels []string) ([]Binding, error) {
	present := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		present[l] = struct{}{}
	}

	nodes := PreOrder(root)
	bindings := make([]Binding, 0, len(nodes))
	for _, n := range nodes {
		label := MarkerLabel(n.Name)
		if _, ok := present[label]; ok {
			bindings = append(bindings, Binding{Node: n, Marker: label})
			continue
		}

		if n.Synthesis != nil {
			missing := missingInputs(n.Synthesis.Average, present)
			if len(missing) == 0 {
				bindings = append(bindings, Binding{Node: n, Average: n.Synthesis.Average})
				continue
			}
			return nil, &BindingError{Joint: n.Name, Missing: append([]string{label}, missing...)}
		}

		return nil, &BindingError{Joint: n.Name, Missing: []string{label}}
	}
	return bindings, nil
}

func missingInputs(inputs []string, present map[string]struct{}) []string {
	var missing []string
	for _, in := range inputs {
		if _, ok := present[in]; !ok {
			missing = append(missing, in)
		}
	}
	return missing
}
