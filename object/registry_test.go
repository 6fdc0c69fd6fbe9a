package object

import (
	"testing"

	"github.com/wudi/intmud/unit"
)

func newTestClass(name string, bases ...string) *unit.Unit {
	return unit.New(name, bases, nil)
}

func TestRegistryLinkageScenarioS3(t *testing.T) {
	table := unit.NewTable()
	c := newTestClass("C")
	table.Register(c)

	reg := NewRegistry()
	x, y, z := New(c, table), New(c, table), New(c, table)
	reg.Register("C", x)
	reg.Register("C", y)
	reg.Register("C", z)

	if reg.GetFirstObject("C") != x {
		t.Fatal("GetFirstObject should return x")
	}
	if x.Next() != y || y.Next() != z || z.Next() != nil {
		t.Fatal("Next chain broken")
	}
	if z.Prev() != y {
		t.Fatal("Prev broken")
	}

	reg.Unregister(y)
	if x.Next() != z {
		t.Fatal("Unregister(y) should relink x.Next to z")
	}
	if z.Prev() != x {
		t.Fatal("Unregister(y) should relink z.Prev to x")
	}
	if got := reg.GetObjects("C"); len(got) != 2 {
		t.Fatalf("list length after unregister = %d, want 2", len(got))
	}
}

func TestObjectSingleListMembership(t *testing.T) {
	table := unit.NewTable()
	a := newTestClass("A")
	b := newTestClass("B")
	table.Register(a)
	table.Register(b)

	reg := NewRegistry()
	o := New(a, table)
	reg.Register("A", o)
	reg.Register("B", o)

	if len(reg.GetObjects("A")) != 0 {
		t.Fatal("Object should have been removed from A's list when re-registered under B")
	}
	if len(reg.GetObjects("B")) != 1 {
		t.Fatal("Object should be present in B's list")
	}
}

func TestLinkConsistencyInvariant(t *testing.T) {
	table := unit.NewTable()
	c := newTestClass("C")
	table.Register(c)
	reg := NewRegistry()

	objs := make([]*Object, 5)
	for i := range objs {
		objs[i] = New(c, table)
		reg.Register("C", objs[i])
	}

	head := reg.GetFirstObject("C")
	n := 0
	for o := head; o != nil; o = o.Next() {
		if o.Next() != nil && o.Next().Prev() != o {
			t.Fatal("next/prev mutual consistency violated")
		}
		n++
	}
	if n != len(objs) {
		t.Fatalf("traversal length = %d, want %d", n, len(objs))
	}
}

func TestResolveHierarchyDiamond(t *testing.T) {
	table := unit.NewTable()
	root := newTestClass("Raiz")
	left := newTestClass("Esquerda", "Raiz")
	right := newTestClass("Direita", "Raiz")
	bottom := newTestClass("Fundo", "Esquerda", "Direita")
	table.Register(root)
	table.Register(left)
	table.Register(right)
	table.Register(bottom)

	h := ResolveHierarchy(bottom, table)
	names := make([]string, len(h))
	for i, u := range h {
		names[i] = u.ClassName
	}
	want := []string{"Fundo", "Esquerda", "Raiz", "Direita"}
	if len(names) != len(want) {
		t.Fatalf("hierarchy = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("hierarchy = %v, want %v", names, want)
		}
	}
}

func TestInheritanceDispatchScenarioS2(t *testing.T) {
	table := unit.NewTable()
	a := newTestClass("A")
	a.AddFunction(&unit.Function{Name: "greet", Bytecode: []byte{0xAA}})
	b := newTestClass("B", "A")
	b.AddFunction(&unit.Function{Name: "greet", Bytecode: []byte{0xBB}})
	table.Register(a)
	table.Register(b)

	obj := New(b, table)
	defUnit, fn, ok := obj.ResolveMethod("greet")
	if !ok || defUnit.ClassName != "B" || fn.Bytecode[0] != 0xBB {
		t.Fatalf("expected B's greet to win, got unit=%v fn=%v", defUnit, fn)
	}

	bNoOverride := newTestClass("BNoOverride", "A")
	table.Register(bNoOverride)
	obj2 := New(bNoOverride, table)
	defUnit2, fn2, ok2 := obj2.ResolveMethod("greet")
	if !ok2 || defUnit2.ClassName != "A" || fn2.Bytecode[0] != 0xAA {
		t.Fatalf("expected fallback to A's greet, got unit=%v", defUnit2)
	}
}
