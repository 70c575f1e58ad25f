package sat

import "fmt"

func ExampleSolve() {
	clauses := [][]Literal{
		{1},
		{-1, 2},
		{-2, 3},
	}

	model, ok, _ := Solve(clauses, 3)
	fmt.Println(ok, model)

	// Output:
	// true [1 2 3]
}

func ExampleSolve_unsatisfiable() {
	clauses := [][]Literal{
		{1},
		{-1},
	}

	model, ok, _ := Solve(clauses, 1)
	fmt.Println(ok, model)

	// Output:
	// false []
}

func ExampleQueue() {
	q := NewQueue(2)

	q.Push(1)
	q.Push(-2)
	q.Push(3)

	fmt.Println(q)
	fmt.Println(q.Pop())
	fmt.Println(q)

	// Output:
	// Queue[1 -2 3]
	// 1
	// Queue[-2 3]
}
