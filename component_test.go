package hwseed

import (
	"errors"
	"testing"
)

func TestComponentNamesRoundTrip(t *testing.T) {
	for _, c := range Components() {
		got, err := ParseComponent(c.String())
		if err != nil {
			t.Fatalf("ParseComponent(%q) error: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseComponent(%q) = %v, want %v", c.String(), got, c)
		}
	}

	if c, err := ParseComponent("  MotherBoard "); err != nil || c != Motherboard {
		t.Errorf("ParseComponent is not case-insensitive: %v, %v", c, err)
	}
}

func TestParseComponentUnknown(t *testing.T) {
	_, err := ParseComponent("toaster")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseComponent(toaster) error = %v, want ErrInvalidArgument", err)
	}
}

func TestComponentStringUnknown(t *testing.T) {
	if got := Component(42).String(); got != "component(42)" {
		t.Errorf("Component(42).String() = %q", got)
	}
	if Component(-1).Tag() != 0 {
		t.Error("unknown component should have a zero tag")
	}
}

func TestComponentTagsDistinct(t *testing.T) {
	seen := make(map[uint32]Component)
	for _, c := range Components() {
		tag := c.Tag()
		if prev, dup := seen[tag]; dup {
			t.Fatalf("%v and %v share tag %#x", prev, c, tag)
		}
		seen[tag] = c
	}
}

func TestDeriveComponentSeedPairwiseDistinct(t *testing.T) {
	pairs := [][2]uint32{
		{0, 0},
		{0xDEADBEEF, 0x12345678},
		{0x12345678, 0xDEADBEEF},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 2},
	}

	for _, p := range pairs {
		seeds := componentSeeds(p[0], p[1])
		seen := make(map[uint32]int)
		for i, s := range seeds {
			if j, dup := seen[s]; dup {
				t.Fatalf("master %#x hardware %#x: components %v and %v share seed %#x",
					p[0], p[1], Component(j), Component(i), s)
			}
			seen[s] = i
		}
	}
}

func TestDeriveComponentSeedSensitivity(t *testing.T) {
	const hardware = 0x12345678
	for _, c := range Components() {
		for master := uint32(0); master < 500; master++ {
			a := DeriveComponentSeed(master, hardware, c)
			b := DeriveComponentSeed(master+1, hardware, c)
			if a == b {
				t.Fatalf("%v: masters %d and %d give the same seed", c, master, master+1)
			}
		}
	}
}

func TestDeriveComponentSeedOrderMatters(t *testing.T) {
	a := DeriveComponentSeed(0xDEADBEEF, 0x12345678, CPU)
	b := DeriveComponentSeed(0x12345678, 0xDEADBEEF, CPU)
	if a == b {
		t.Error("swapping master and hardware seeds should change the component seed")
	}
}
