/*
Package ham builds the state layer of a hidden Markov model from a YAML topology.

A topology names the emission tracks, then lists states. Each state has a name,
a label, outgoing transition probabilities and, except for the reserved "init"
state, optional single-track and pair emission distributions. Transitions may
target states declared further down and the terminal pseudo-state "end".

# Concept

Loading happens in two phases. States are first parsed by name, keeping a
sparse list of log-probability transitions. Once every state is known, each
non-init state gets a dense iterator and every state is finalized: its
transitions are rewritten into a slice indexed by destination iterator, so a
dynamic-programming kernel can read state k's transition to state j as
st.LogProbTo(j) with no name lookups.

Probabilities are stored as natural logarithms. A probability of 0 becomes
negative infinity, never NaN.

# Usage

	topo, err := ham.Load(ctx, "cpg.yaml",
		ham.WithLogger(logger),
		ham.WithDuplicateEndPolicy(domain.DuplicateEndReject),
	)
	if err != nil {
		return err
	}
	for _, st := range topo.States() {
		fmt.Println(st.Name, st.Iterator(), st.EndLogProb())
	}

Models can also be assembled in Go with package dsl, which goes through the
same loader.

# Errors

Every failure is returned as an error wrapping a sentinel from package domain,
topology or emission; test them with errors.Is. No partial topology is ever
returned.
*/
package ham
