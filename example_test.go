package ham_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/ham"
	"github.com/aretw0/ham/pkg/dsl"
)

// ExampleLoad shows the dense transition layout of a loaded topology.
func ExampleLoad() {
	topo, err := ham.Load(context.Background(), "testdata/cpg.yaml")
	if err != nil {
		log.Fatal(err)
	}

	for _, st := range topo.States() {
		fmt.Printf("%d %s (%s)\n", st.Iterator(), st.Name, st.Label)
	}
	// Output:
	// 0 island (CpG island)
	// 1 ocean (background)
}

// ExampleParse prints the diagnostic dump of the init state.
func ExampleParse() {
	topo, err := ham.Parse(context.Background(), []byte(`
states:
  - {name: init, label: start, transitions: {A: 1}}
  - {name: A, label: only, transitions: {end: 1}}
`))
	if err != nil {
		log.Fatal(err)
	}
	if err := topo.Init().Dump(os.Stdout); err != nil {
		log.Fatal(err)
	}
	// Output:
	// state: init (start)
	//   transitions:
	//     [0] A 1 (log 0)
}

// Example_dsl builds a model in Go instead of YAML.
func Example_dsl() {
	b := dsl.New("coin").Track("faces", "H", "T")
	b.Add("init").Go("fair", 1)
	b.Add("fair").
		Label("fair coin").
		Go("fair", 0.9).
		End(0.1).
		Emit("faces", map[string]float64{"H": 0.5, "T": 0.5})

	topo, err := b.Build(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fair, _ := topo.Lookup("fair")
	fmt.Printf("%s: %d states, end %.1f\n", fair.Label, topo.Len(), fair.EndTransition().Prob())
	// Output:
	// fair coin: 2 states, end 0.1
}
