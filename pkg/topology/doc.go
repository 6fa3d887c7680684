/*
Package topology owns the full set of states of an HMM model.

It is the collaborator the domain package expects: it knows every state name
before any state is parsed, assigns each non-init state its iterator, and
serves as the StateIndex during finalization. The result is read-only and
safe for concurrent readers.

	doc, err := topology.Decode(data)
	if err != nil {
		return err
	}
	topo, err := topology.Load(ctx, doc, topology.WithLogger(logger))
	if err != nil {
		return err
	}
	for k, st := range topo.States() {
		// st.Iterator() == k; st.LogProbTo(j) is the k -> j transition.
	}
*/
package topology
