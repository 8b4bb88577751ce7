package realfn_test

import (
	"fmt"

	"honnef.co/go/realfn"
)

func ExampleDomain() {
	var d realfn.Domain
	d.Add(realfn.RightOpen(0, 1))
	d.Add(realfn.Closed(1, 2))
	fmt.Println(d)
	fmt.Println(d.Contains(0), d.Contains(1), d.Contains(2.5))

	// Output:
	// [0, 2]
	// true true false
}

func ExampleBuildEnvelope() {
	identity := realfn.NewPolynomial(0, 1)
	negation := realfn.NewPolynomial(0, -1)
	abs, err := realfn.BuildEnvelope(realfn.Upper, identity, negation)
	if err != nil {
		panic(err)
	}
	var ys []float64
	for _, x := range []float64{-2, -1, 0, 1, 2} {
		ys = append(ys, abs.Eval(x))
	}
	fmt.Println(ys)
	fmt.Println(abs.Breakpoints())
	fmt.Println(abs)

	// Output:
	// [2 1 0 1 2]
	// [0]
	// upper envelope{(-∞, 0): -x; [0, +∞): x}
}

func ExamplePolynomial_Roots() {
	// x⁴ − 5x² + 4 = (x² − 1)(x² − 4)
	p := realfn.NewPolynomial(4, 0, -5, 0, 1)
	roots, err := p.Roots()
	if err != nil {
		panic(err)
	}
	for _, r := range roots {
		fmt.Printf("%.3f\n", r)
	}

	// Output:
	// -2.000
	// -1.000
	// 1.000
	// 2.000
}
