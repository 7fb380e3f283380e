package hwseed

import (
	"encoding/binary"
	"net"

	"github.com/google/uuid"
)

// Common character sets for [GenerateSerial].
const (
	// CharsetAlphanumeric holds upper-case letters and digits, the usual
	// shape of board, disk and monitor serial numbers.
	CharsetAlphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CharsetHexUpper holds upper-case hexadecimal digits.
	CharsetHexUpper = "0123456789ABCDEF"
	// CharsetDigits holds decimal digits.
	CharsetDigits = "0123456789"
)

// Bits forced on generated MAC addresses and UUIDs.
const (
	macOctets          = 6
	macMulticastBit    = 0x01
	macLocallyAdminBit = 0x02

	uuidWords          = 4
	uuidVersionOctet   = 6
	uuidVersionMask    = 0x0f
	uuidVersion4       = 0x40
	uuidVariantOctet   = 8
	uuidVariantMask    = 0x3f
	uuidVariantRFC4122 = 0x80
)

// MAC is a 48-bit hardware address.
type MAC [macOctets]byte

// String returns the address in colon-separated lower-case hex form.
func (m MAC) String() string {
	return m.HardwareAddr().String()
}

// HardwareAddr returns the address as a [net.HardwareAddr].
func (m MAC) HardwareAddr() net.HardwareAddr {
	out := make(net.HardwareAddr, macOctets)
	copy(out, m[:])

	return out
}

// GenerateSerial returns n characters drawn from charset. Character i is
// selected by [GenerateDeterministicValue] keyed by [PositionSeed](seed, i).
// It returns "" when n is not positive or charset is empty.
func GenerateSerial(seed uint32, n int, charset string) string {
	if n <= 0 || charset == "" {
		return ""
	}

	out := make([]byte, n)
	fillSerial(seed, out, charset)

	return string(out)
}

// GenerateSerialString writes len(buf)-1 characters from charset into buf,
// followed by a NUL terminator, and returns the number of characters written.
// It is the bounded-buffer form of [GenerateSerial] for callers that hand in
// fixed storage. An empty buf is left untouched; an empty charset produces
// only the terminator.
func GenerateSerialString(seed uint32, buf []byte, charset string) int {
	if len(buf) == 0 {
		return 0
	}

	n := len(buf) - 1
	if charset == "" {
		buf[0] = 0
		return 0
	}

	fillSerial(seed, buf[:n], charset)
	buf[n] = 0

	return n
}

func fillSerial(seed uint32, dst []byte, charset string) {
	last := uint32(len(charset) - 1)
	for i := range dst {
		idx := GenerateDeterministicValue(PositionSeed(seed, i), 0, last)
		dst[i] = charset[idx]
	}
}

// GenerateMacAddress returns a unicast, locally administered MAC address.
// Each octet is drawn from [0,255] by [GenerateDeterministicValue] keyed by
// the octet index; the multicast bit of the first octet is then cleared and the
// locally-administered bit set.
func GenerateMacAddress(seed uint32) MAC {
	var mac MAC
	for i := range mac {
		mac[i] = byte(GenerateDeterministicValue(PositionSeed(seed, i), 0, 0xff))
	}

	mac[0] = mac[0]&^macMulticastBit | macLocallyAdminBit

	return mac
}

// GenerateUuid returns a version 4 shaped UUID. The 128 bits come from four
// full-range [GenerateDeterministicValue] calls written big endian; the
// version nibble and RFC 4122 variant bits are then overwritten.
func GenerateUuid(seed uint32) uuid.UUID {
	var u uuid.UUID
	for i := range uuidWords {
		w := GenerateDeterministicValue(PositionSeed(seed, i), 0, ^uint32(0))
		binary.BigEndian.PutUint32(u[i*4:], w)
	}

	u[uuidVersionOctet] = u[uuidVersionOctet]&uuidVersionMask | uuidVersion4
	u[uuidVariantOctet] = u[uuidVariantOctet]&uuidVariantMask | uuidVariantRFC4122

	return u
}
