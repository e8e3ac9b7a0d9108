package fsm

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// ToDOT generates a DOT language string representation of the machine for
// visualization. Edges are labelled with their commands; guarded transitions
// are dashed, custom transitions are marked, and the current state is
// highlighted once the machine has begun.
func (f *StateMachine[S]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	if f.started {
		b.WriteString("  __start [shape=point, style=invis];\n")
		b.WriteString(g.Format("  __start -> \"{}\" [label=\" current\"];\n\n", f.current))
	}

	grouped := g.NewMap[g.Pair[S, S], g.Slice[g.String]]()

	for from, row := range f.table.Iter() {
		for command, entry := range row.Iter() {
			key := g.Pair[S, S]{Key: from, Value: entry.to}

			label := g.String(command)
			if entry.tr.base().guard != nil {
				label += " (guarded)"
			}

			if _, builtin := entry.tr.(*TransitionBase[S]); !builtin {
				label += " (custom)"
			}

			grouped.Entry(key).
				AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
				OrInsert(g.SliceOf(label))
		}
	}

	states := f.States()
	states.SortBy(func(a, b S) cmp.Ordering {
		return cmp.Cmp(g.Format("{}", a), g.Format("{}", b))
	})

	outgoing := g.NewSet[S]()
	for p := range grouped.Keys().Iter() {
		outgoing.Insert(p.Key)
	}

	for state := range states.Iter() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state))

		switch {
		case f.started && state == f.current:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case !outgoing.Contains(state):
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		var tooltips g.Slice[g.String]

		if f.notifiers[state].onEnter.NotEmpty() {
			tooltips.Push("OnEnter")
		}

		if f.notifiers[state].onExit.NotEmpty() {
			tooltips.Push("OnExit")
		}

		if tooltips.NotEmpty() {
			attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for pair, labels := range grouped.Iter() {
		from, to := pair.Key, pair.Value

		var edge g.Slice[g.String]
		label := labels.Join("\\n")

		edge.Push(g.Format("label=\" {} \"", label))

		if label.Contains("(guarded)") {
			edge.Push("style=dashed", "color=red", "arrowhead=odiamond")
		}

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", from, to, edge.Join(", ")))
	}

	b.WriteString("}\n")

	return b.String()
}
