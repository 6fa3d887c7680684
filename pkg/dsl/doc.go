/*
Package dsl provides a Go DSL for programmatically constructing HMM topologies.

It is an alternative to hand-written YAML: the builder produces the same
document a file would contain and hands it to topology.Load, so every
validation rule applies unchanged. This is useful for generated models, unit
tests and IDE autocompletion.

Example usage:

	b := dsl.New("cpg").Track("nukes", "A", "C", "G", "T")

	b.Add("init").
		Label("start").
		Go("island", 0.1).
		Go("ocean", 0.9)

	b.Add("island").
		Label("CpG island").
		Go("island", 0.9).
		Go("ocean", 0.05).
		End(0.05).
		Emit("nukes", map[string]float64{"A": 0.1, "C": 0.4, "G": 0.4, "T": 0.1})

	b.Add("ocean").
		Go("ocean", 0.95).
		End(0.05)

	topo, err := b.Build(ctx)
*/
package dsl
