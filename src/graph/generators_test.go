package graph

import "testing"

func TestGenerate(t *testing.T) {
	cases := []struct {
		shape string
		opts  GeneratorOptions
		nodes int
		links int
	}{
		{ShapeStar, GeneratorOptions{Size: 4}, 4, 3},
		{ShapePath, GeneratorOptions{Size: 4}, 4, 3},
		{ShapeRing, GeneratorOptions{Size: 5}, 5, 5},
		{ShapeRing, GeneratorOptions{Size: 2}, 2, 1},
		{ShapeComplete, GeneratorOptions{Size: 5}, 5, 10},
		{ShapeGrid, GeneratorOptions{Size: 3}, 9, 12},
		{ShapeRandom, GeneratorOptions{Size: 10, Extra: 4, Seed: 7}, 10, 13},
		{ShapeRandom, GeneratorOptions{Size: 4, Extra: 100, Seed: 7}, 4, 6},
	}

	for _, c := range cases {
		top, err := Generate(c.shape, c.opts)
		if err != nil {
			t.Fatalf("%s: err: %v", c.shape, err)
		}
		if top.Len() != c.nodes {
			t.Fatalf("%s: should have %d nodes, not %d", c.shape, c.nodes, top.Len())
		}
		if top.Links() != c.links {
			t.Fatalf("%s: should have %d links, not %d", c.shape, c.links, top.Links())
		}
		if top.Initiator() != NodeName(0) {
			t.Fatalf("%s: initiator should be %s, not %s", c.shape, NodeName(0), top.Initiator())
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate("hypercube", GeneratorOptions{Size: 4}); err == nil {
		t.Fatalf("unknown shapes should be rejected")
	}
	if _, err := Generate(ShapeStar, GeneratorOptions{Size: 0}); err == nil {
		t.Fatalf("empty graphs should be rejected")
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a, err := Random(20, 10, 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := Random(20, 10, 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	for _, id := range a.IDs() {
		na, nb := a.Neighbors(id), b.Neighbors(id)
		if len(na) != len(nb) {
			t.Fatalf("Neighbors(%s) differ: %v vs %v", id, na, nb)
		}
		for i := range na {
			if na[i] != nb[i] {
				t.Fatalf("Neighbors(%s) differ: %v vs %v", id, na, nb)
			}
		}
	}
}
