package compositor

import (
	"testing"

	"github.com/unframework/lightbake/texture"
)

func fill(t *texture.Texture, r, g, b, a float32) {
	for offset := uint32(0); offset < t.Width*t.Height; offset++ {
		t.SetTexel(offset, r, g, b, a)
	}
}

func TestCompositeConstantLayers(t *testing.T) {
	base := texture.New(4, 4, texture.Linear)
	factor := texture.New(4, 4, texture.Linear)
	output := texture.New(4, 4, texture.Linear)

	fill(base, 1, 1, 1, 1)
	fill(factor, 0, 0, 0, 0)

	c, err := New(base, output)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = c.AddLayer("zero", factor, 2); err != nil {
		t.Fatal(err)
	}

	c.Composite()

	// A zero factor at any multiplier contributes nothing: the output is
	// exactly the base
	for offset := uint32(0); offset < 16; offset++ {
		r, g, b, _ := output.Texel(offset)
		if r != 1 || g != 1 || b != 1 {
			t.Fatalf("texel %d: expected exactly (1, 1, 1); got (%f, %f, %f)", offset, r, g, b)
		}
	}
}

func TestCompositeAdditiveScaling(t *testing.T) {
	type spec struct {
		baseVal     float32
		factorVal   float32
		multiplier  float32
		expectedVal float32
	}
	specs := []spec{
		{0.5, 0.25, 1, 0.75},
		{0.5, 0.25, 2, 1},
		{0, 0.25, 4, 1},
		{1, 1, 0, 1},
	}

	for index, s := range specs {
		base := texture.New(2, 2, texture.Linear)
		factor := texture.New(2, 2, texture.Linear)
		output := texture.New(2, 2, texture.Linear)

		fill(base, s.baseVal, s.baseVal, s.baseVal, 1)
		fill(factor, s.factorVal, s.factorVal, s.factorVal, 1)

		c, err := New(base, output)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = c.AddLayer("factor", factor, s.multiplier); err != nil {
			t.Fatal(err)
		}

		c.Composite()

		r, _, _, _ := output.Texel(0)
		if r != s.expectedVal {
			t.Fatalf("[spec %d] expected %f; got %f", index, s.expectedVal, r)
		}
	}
}

func TestMultiplierEditNextTick(t *testing.T) {
	base := texture.New(2, 2, texture.Linear)
	factor := texture.New(2, 2, texture.Linear)
	output := texture.New(2, 2, texture.Linear)

	fill(factor, 0.25, 0.25, 0.25, 1)

	c, err := New(base, output)
	if err != nil {
		t.Fatal(err)
	}
	layer, err := c.AddLayer("factor", factor, 1)
	if err != nil {
		t.Fatal(err)
	}

	c.Composite()
	if r, _, _, _ := output.Texel(0); r != 0.25 {
		t.Fatalf("expected 0.25 before edit; got %f", r)
	}

	// Edits take effect on the next composite, with no smoothing
	layer.SetMultiplier(2)
	if r, _, _, _ := output.Texel(0); r != 0.25 {
		t.Fatalf("expected edit to be deferred to the next tick; got %f", r)
	}

	c.Composite()
	if r, _, _, _ := output.Texel(0); r != 0.5 {
		t.Fatalf("expected 0.5 after edit; got %f", r)
	}
}

func TestStableOutputIdentity(t *testing.T) {
	base := texture.New(2, 2, texture.Linear)
	output := texture.New(2, 2, texture.Linear)

	c, err := New(base, output)
	if err != nil {
		t.Fatal(err)
	}

	if c.Output() != output {
		t.Fatal("expected the output texture identity to be preserved")
	}

	v0 := output.Version()
	c.Composite()
	c.Composite()
	if c.Output() != output {
		t.Fatal("expected the output texture identity to survive compositing")
	}
	if output.Version() != v0+2 {
		t.Fatalf("expected a version bump per composite; got %d", output.Version()-v0)
	}
}

func TestSizeMismatch(t *testing.T) {
	base := texture.New(2, 2, texture.Linear)
	output := texture.New(4, 4, texture.Linear)

	if _, err := New(base, output); err == nil {
		t.Fatal("expected base size mismatch error")
	}

	c, err := New(texture.New(4, 4, texture.Linear), output)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = c.AddLayer("bad", texture.New(2, 2, texture.Linear), 1); err == nil {
		t.Fatal("expected layer size mismatch error")
	}
}
