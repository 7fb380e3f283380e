package hwseed

// MixVersion identifies the mixing and reduction scheme used by
// [Mix32], [DeriveComponentSeed], [PositionSeed] and
// [GenerateDeterministicValue]. Any change to the constants below must bump it,
// because persisted master and hardware seeds only reproduce the same
// identities under the same version.
const MixVersion = 1

// Constants of the mixing scheme, version 1.
const (
	// fmix32 multipliers from MurmurHash3.
	mixMul1 uint32 = 0x85ebca6b
	mixMul2 uint32 = 0xc2b2ae35

	// goldenGamma is the 32-bit golden ratio increment, used to spread
	// small integers (tags, positions) across the word before mixing.
	goldenGamma uint32 = 0x9e3779b9

	// hardwareRotate separates the master and hardware contributions so
	// that swapping the two values does not produce the same seed.
	hardwareRotate = 16
)

// Mix32 is the MurmurHash3 32-bit finalizer. Every input bit affects every
// output bit with probability close to one half, and the mapping is a
// bijection on uint32.
func Mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= mixMul1
	x ^= x >> 13
	x *= mixMul2
	x ^= x >> 16

	return x
}

// PositionSeed derives the seed used for position i of a multi-part output
// (serial character, MAC byte, UUID word) from a base seed.
func PositionSeed(seed uint32, i int) uint32 {
	return seed ^ Mix32(uint32(i+1)*goldenGamma)
}

func rotl32(x uint32, r uint) uint32 {
	return x<<r | x>>(32-r)
}
