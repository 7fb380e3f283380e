package hwseed

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateSerial(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		charset string
	}{
		{"alphanumeric", 20, CharsetAlphanumeric},
		{"hex", 16, CharsetHexUpper},
		{"digits", 1, CharsetDigits},
		{"single char", 8, "Z"},
		{"long", 512, CharsetAlphanumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSerial(0xC0FFEE, tt.n, tt.charset)
			if len(got) != tt.n {
				t.Fatalf("len = %d, want %d", len(got), tt.n)
			}
			for i, c := range []byte(got) {
				if !strings.ContainsRune(tt.charset, rune(c)) {
					t.Fatalf("char %d %q not in charset %q", i, c, tt.charset)
				}
			}
			if again := GenerateSerial(0xC0FFEE, tt.n, tt.charset); again != got {
				t.Errorf("GenerateSerial not deterministic: %q vs %q", got, again)
			}
		})
	}
}

func TestGenerateSerialPrefixStable(t *testing.T) {
	short := GenerateSerial(42, 8, CharsetAlphanumeric)
	long := GenerateSerial(42, 16, CharsetAlphanumeric)
	if !strings.HasPrefix(long, short) {
		t.Errorf("serial of length 16 %q does not extend length 8 %q", long, short)
	}
}

func TestGenerateSerialDegenerateInputs(t *testing.T) {
	if got := GenerateSerial(1, 0, CharsetDigits); got != "" {
		t.Errorf("n=0 gave %q", got)
	}
	if got := GenerateSerial(1, -5, CharsetDigits); got != "" {
		t.Errorf("n=-5 gave %q", got)
	}
	if got := GenerateSerial(1, 10, ""); got != "" {
		t.Errorf("empty charset gave %q", got)
	}
}

func TestGenerateSerialString(t *testing.T) {
	for _, size := range []int{1, 2, 9, 33} {
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = '#'
		}

		n := GenerateSerialString(0xABCDEF, buf, CharsetHexUpper)
		if n != size-1 {
			t.Fatalf("size %d: wrote %d chars, want %d", size, n, size-1)
		}
		if buf[size-1] != 0 {
			t.Fatalf("size %d: missing terminator", size)
		}
		for i := range n {
			if !strings.ContainsRune(CharsetHexUpper, rune(buf[i])) {
				t.Fatalf("size %d: char %d %q not in charset", size, i, buf[i])
			}
		}
		if string(buf[:n]) != GenerateSerial(0xABCDEF, n, CharsetHexUpper) {
			t.Errorf("size %d: buffer form differs from owned form", size)
		}
	}
}

func TestGenerateSerialStringDegenerateInputs(t *testing.T) {
	if n := GenerateSerialString(1, nil, CharsetDigits); n != 0 {
		t.Errorf("nil buffer wrote %d", n)
	}

	buf := []byte("xxxx")
	if n := GenerateSerialString(1, buf, ""); n != 0 {
		t.Errorf("empty charset wrote %d", n)
	}
	if buf[0] != 0 {
		t.Errorf("empty charset should leave a terminator, got %q", buf)
	}
}

func TestGenerateMacAddress(t *testing.T) {
	for seed := uint32(0); seed < 5000; seed++ {
		mac := GenerateMacAddress(seed * 2654435761)
		if mac[0]&macMulticastBit != 0 {
			t.Fatalf("seed %d: multicast bit set in %s", seed, mac)
		}
		if mac[0]&macLocallyAdminBit == 0 {
			t.Fatalf("seed %d: locally administered bit clear in %s", seed, mac)
		}
	}

	a := GenerateMacAddress(7)
	if b := GenerateMacAddress(7); a != b {
		t.Errorf("GenerateMacAddress not deterministic: %s vs %s", a, b)
	}
	if c := GenerateMacAddress(8); a == c {
		t.Errorf("seeds 7 and 8 produced the same MAC %s", a)
	}
}

func TestMACFormatting(t *testing.T) {
	mac := MAC{0x02, 0xab, 0x00, 0x10, 0xff, 0x01}
	if got, want := mac.String(), "02:ab:00:10:ff:01"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	hw := mac.HardwareAddr()
	hw[0] = 0xff
	if mac[0] != 0x02 {
		t.Error("HardwareAddr() must return a copy")
	}
}

func TestGenerateUuid(t *testing.T) {
	for seed := uint32(0); seed < 5000; seed++ {
		u := GenerateUuid(seed * 40503)
		if u.Version() != 4 {
			t.Fatalf("seed %d: version %d, want 4", seed, u.Version())
		}
		if u.Variant() != uuid.RFC4122 {
			t.Fatalf("seed %d: variant %v, want RFC4122", seed, u.Variant())
		}
	}

	a := GenerateUuid(0xDEADBEEF)
	if b := GenerateUuid(0xDEADBEEF); a != b {
		t.Errorf("GenerateUuid not deterministic: %s vs %s", a, b)
	}
	if _, err := uuid.Parse(a.String()); err != nil {
		t.Errorf("uuid.Parse(%s) error: %v", a, err)
	}
	if c := GenerateUuid(0xDEADBEEE); a == c {
		t.Errorf("distinct seeds produced the same UUID %s", a)
	}
}
