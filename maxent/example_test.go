package maxent_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/maxent/constraint"
	"github.com/katalvlaran/maxent/maxent"
)

// ExampleOptimize solves two binary variables that must differ.
func ExampleOptimize() {
	set, err := constraint.NewSet(2, 2, constraint.Pairwise(0, 1))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := maxent.Optimize(context.Background(), set)
	if err != nil {
		fmt.Println(err)
		return
	}
	for n := 0; n < 2; n++ {
		fmt.Printf("Pr[%d=0] = %.3f\n", n, res.VarProb(n, 0))
	}
	fmt.Printf("entropy = %.3f\n", res.Entropy())
	// Output:
	// Pr[0=0] = 0.500
	// Pr[1=0] = 0.500
	// entropy = 2.000
}

// ExampleOptimizeDecomposed splits off an unconstrained variable.
func ExampleOptimizeDecomposed() {
	set, _ := constraint.NewSet(3, 3,
		constraint.Pairwise(0, 1),
		constraint.Unary(2, 0),
	)
	res, err := maxent.OptimizeDecomposed(context.Background(), set)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.3f %.3f %.3f\n", res.VarProb(2, 0), res.VarProb(2, 1), res.VarProb(2, 2))
	// Output:
	// 0.000 0.500 0.500
}
