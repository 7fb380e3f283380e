package hwseed_test

import (
	"context"
	"fmt"

	"github.com/slashdevops/hwseed"
)

// Two seeders with the same master and hardware seed produce the same
// identities.
func Example() {
	ctx := context.Background()

	s := hwseed.New().
		WithStore(hwseed.NewMemoryStore()).
		WithEntropy(hwseed.FixedEntropy(0x12345678))

	if err := s.SetUserSeed(ctx, 0xDEADBEEF); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("disk serial:", s.Serial(hwseed.Disk, 12, hwseed.CharsetAlphanumeric))
	fmt.Println("network mac:", s.MAC(hwseed.Network))
	fmt.Println("board uuid: ", s.UUID(hwseed.Motherboard))
	fmt.Println("cpu value:  ", s.Value(hwseed.CPU, 0, 1000))
	// Output:
	// disk serial: 9G2XPLNAN80I
	// network mac: d2:6a:ec:6d:18:1f
	// board uuid:  bfd89eb2-7d7d-40d4-b549-d3082ca2714f
	// cpu value:   2
}

func ExampleDeriveComponentSeed() {
	for _, c := range []hwseed.Component{hwseed.CPU, hwseed.GPU, hwseed.Network} {
		fmt.Printf("%-8s %#08x\n", c, hwseed.DeriveComponentSeed(0xDEADBEEF, 0x12345678, c))
	}
	// Output:
	// cpu      0x42a349df
	// gpu      0x8978ccdb
	// network  0x5dc1c0c0
}

func ExampleGenerateDeterministicValue() {
	// Bounds may be given in either order.
	fmt.Println(hwseed.GenerateDeterministicValue(42, 1, 6))
	fmt.Println(hwseed.GenerateDeterministicValue(42, 6, 1))
	// Output:
	// 1
	// 1
}

func ExampleGenerateSerial() {
	fmt.Println(hwseed.GenerateSerial(42, 10, hwseed.CharsetHexUpper))
	// Output: 63F83759B1
}

func ExampleGenerateSerialString() {
	buf := make([]byte, 11)
	n := hwseed.GenerateSerialString(42, buf, hwseed.CharsetHexUpper)
	fmt.Println(n, string(buf[:n]), buf[n])
	// Output: 10 63F83759B1 0
}

func ExampleGenerateMacAddress() {
	fmt.Println(hwseed.GenerateMacAddress(42))
	// Output: 06:63:df:78:23:47
}

func ExampleGenerateUuid() {
	fmt.Println(hwseed.GenerateUuid(42))
	// Output: a0a95b06-0ada-4363-8ff2-c0df3ef0e478
}
