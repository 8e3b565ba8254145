package seometa

import (
	"strings"
)

// Fragment is the markup produced by one slot.
type Fragment struct {
	Slot   string
	Group  string
	Kind   SlotKind
	Markup string
}

// SlotFailure records a slot skipped under ErrorStrategySkip.
type SlotFailure struct {
	Slot string
	Err  error
}

// GroupOutput is the ordered output of one group.
type GroupOutput struct {
	Group     string
	Fragments []Fragment
}

// String joins the group's fragments with newlines.
func (g GroupOutput) String() string {
	return joinFragments(g.Fragments, FragmentSeparator)
}

// Output is the result of a RenderAll pass. Fragments are in declaration
// order; slots that resolved to no value contribute nothing.
type Output struct {
	Schema    string
	Placement Placement
	Fragments []Fragment
	Failures  []SlotFailure
	separator string
}

// String returns the concatenated markup.
func (o *Output) String() string {
	if o == nil {
		return ""
	}
	sep := o.separator
	if sep == "" {
		sep = FragmentSeparator
	}
	return joinFragments(o.Fragments, sep)
}

// Len returns the number of fragments.
func (o *Output) Len() int { return len(o.Fragments) }

// HasFailures reports whether any slot was skipped after a failure.
func (o *Output) HasFailures() bool { return len(o.Failures) > 0 }

// Fragment returns the fragment for a slot, if it produced one.
func (o *Output) Fragment(slot string) (Fragment, bool) {
	for _, f := range o.Fragments {
		if f.Slot == slot {
			return f, true
		}
	}
	return Fragment{}, false
}

// Groups partitions the fragments by group, groups ordered by first
// appearance. Ungrouped fragments are collected under the empty group name.
func (o *Output) Groups() []GroupOutput {
	var out []GroupOutput
	index := make(map[string]int)
	for _, f := range o.Fragments {
		i, ok := index[f.Group]
		if !ok {
			i = len(out)
			index[f.Group] = i
			out = append(out, GroupOutput{Group: f.Group})
		}
		out[i].Fragments = append(out[i].Fragments, f)
	}
	return out
}

// Group returns the joined markup of one group.
func (o *Output) Group(name string) string {
	for _, g := range o.Groups() {
		if g.Group == name {
			return g.String()
		}
	}
	return ""
}

func joinFragments(frags []Fragment, sep string) string {
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = f.Markup
	}
	return strings.Join(parts, sep)
}
