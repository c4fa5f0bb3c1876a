package pathfind_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/wikigraph/pkg/pathfind"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

func ExampleFind() {
	g, _ := wiki.FromArticles([]wiki.Article{
		{Title: "A", Links: []int32{1, 2}},
		{Title: "B", Links: []int32{2}},
		{Title: "C", Links: []int32{3}},
		{Title: "D"},
	})

	path, err := pathfind.Find(context.Background(), g, "A", "D")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, id := range path {
		fmt.Println(g.Title(id))
	}

	_, err = pathfind.Find(context.Background(), g, "D", "A")
	fmt.Println(errors.Is(err, pathfind.ErrNoPath))
	// Output:
	// A
	// C
	// D
	// true
}
