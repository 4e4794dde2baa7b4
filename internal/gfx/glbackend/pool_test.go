package glbackend

import "testing"

func TestPoolReusesReleasedIDs(t *testing.T) {
	var p pool[string]

	a, _ := p.add("a")
	b, _ := p.add("b")
	if a != 0 || b != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", a, b)
	}

	if v, ok := p.remove(a); !ok || v != "a" {
		t.Fatalf("remove(%d) = %q, %v", a, v, ok)
	}
	if _, ok := p.remove(a); ok {
		t.Fatal("second remove of the same id succeeded")
	}

	c, _ := p.add("c")
	if c != a {
		t.Errorf("released id not reused: got %d, want %d", c, a)
	}
	if p.len() != 2 {
		t.Errorf("len = %d, want 2", p.len())
	}
	ids := p.ids()
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Errorf("ids = %v, want [0 1]", ids)
	}
}

func TestPoolExhaustion(t *testing.T) {
	p := pool[int]{next: maxHandles - 1}
	if _, ok := p.add(1); !ok {
		t.Fatal("last id should be available")
	}
	if _, ok := p.add(2); ok {
		t.Fatal("add past the handle space succeeded")
	}
}

func TestUnpackRGBA(t *testing.T) {
	r, g, b, a := unpackRGBA(0x6495EDFF)
	want := [4]float32{100.0 / 255, 149.0 / 255, 237.0 / 255, 1}
	got := [4]float32{r, g, b, a}
	if got != want {
		t.Errorf("unpackRGBA = %v, want %v", got, want)
	}
}
