package crossflow_test

import (
	"fmt"

	"github.com/matzehuels/crossflow/pkg/crossflow"
)

func ExampleBuild() {
	c := crossflow.Crossroad{
		North: crossflow.Movements{Left: 1, Front: 2, Right: 1},
		South: crossflow.Movements{Front: 3, Turn: 1},
	}

	opt := crossflow.Build(c, crossflow.Config{})
	g := opt.Graph()
	fmt.Println(len(g.Data), "nodes,", len(g.Links), "links")

	l, _ := opt.Link("siFront", "noFront")
	fmt.Println("siFront -> noFront width:", l.LineStyle.Width)
	// Output:
	// 36 nodes, 16 links
	// siFront -> noFront width: 7.5
}

func ExampleCalcOffsets() {
	m := crossflow.Movements{Left: 1, Front: 2, Right: 1}
	fmt.Printf("%+v\n", crossflow.CalcOffsets(m, m.Total(), m.Turn, 10))
	// Output:
	// {Left:1.25 Front:5 Right:8.75}
}

func ExampleTarget() {
	fmt.Println(crossflow.Target(crossflow.South, crossflow.Left).Name())
	// Output:
	// west
}

func ExampleComputeTotals() {
	c := crossflow.Crossroad{
		North: crossflow.Movements{Left: 1, Front: 2, Right: 1},
		South: crossflow.Movements{Front: 3, Turn: 1},
	}
	for _, f := range crossflow.ComputeTotals(c, 10).Flows() {
		fmt.Printf("%-5s in=%v out=%v\n", f.Direction, f.In, f.Out)
	}
	// Output:
	// north in=4 out=3
	// south in=4 out=3
	// west  in=0 out=1
	// east  in=0 out=1
}
