package hwseed

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Persisted layout of a [Record], little endian.
const (
	recordMagic   = "HWSD"
	recordVersion = 1

	offMagic       = 0
	offVersion     = 4
	offMaster      = 6
	offSession     = 10
	offHardware    = 14
	offCreation    = 18
	offBootCount   = 26
	offInitialized = 30
	offChecksum    = 31

	// RecordSize is the length of an encoded record.
	RecordSize = offChecksum + 8
)

// ticksPerSecond and epochOffsetTicks convert between [time.Time] and
// creation ticks: 100ns intervals since 1601-01-01 UTC.
const (
	ticksPerSecond   = 10_000_000
	epochOffsetTicks = 116444736000000000
)

// Record is the persisted root state of the seed hierarchy.
type Record struct {
	MasterSeed    uint32
	SessionSeed   uint32
	HardwareSeed  uint32
	CreationTime  int64 // 100ns ticks since 1601-01-01 UTC
	BootCount     uint32
	IsInitialized bool
}

// Created returns CreationTime as a [time.Time] in UTC.
func (r Record) Created() time.Time {
	ticks := r.CreationTime - epochOffsetTicks

	return time.Unix(ticks/ticksPerSecond, (ticks%ticksPerSecond)*100).UTC()
}

// timeToTicks converts t to creation ticks.
func timeToTicks(t time.Time) int64 {
	return t.UnixNano()/100 + epochOffsetTicks
}

// MarshalBinary encodes the record in the fixed layout, followed by an
// xxhash64 checksum of the preceding bytes.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, RecordSize)
	copy(b[offMagic:], recordMagic)
	binary.LittleEndian.PutUint16(b[offVersion:], recordVersion)
	binary.LittleEndian.PutUint32(b[offMaster:], r.MasterSeed)
	binary.LittleEndian.PutUint32(b[offSession:], r.SessionSeed)
	binary.LittleEndian.PutUint32(b[offHardware:], r.HardwareSeed)
	binary.LittleEndian.PutUint64(b[offCreation:], uint64(r.CreationTime))
	binary.LittleEndian.PutUint32(b[offBootCount:], r.BootCount)
	if r.IsInitialized {
		b[offInitialized] = 1
	}
	binary.LittleEndian.PutUint64(b[offChecksum:], xxhash.Sum64(b[:offChecksum]))

	return b, nil
}

// UnmarshalBinary decodes a record written by [Record.MarshalBinary]. Any
// length, magic, version or checksum mismatch returns [ErrCorruptRecord].
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != RecordSize {
		return fmt.Errorf("%w: length %d, want %d", ErrCorruptRecord, len(b), RecordSize)
	}
	if string(b[offMagic:offVersion]) != recordMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorruptRecord, b[offMagic:offVersion])
	}
	if v := binary.LittleEndian.Uint16(b[offVersion:]); v != recordVersion {
		return fmt.Errorf("%w: layout version %d, want %d", ErrCorruptRecord, v, recordVersion)
	}
	if sum := binary.LittleEndian.Uint64(b[offChecksum:]); sum != xxhash.Sum64(b[:offChecksum]) {
		return fmt.Errorf("%w: checksum mismatch", ErrCorruptRecord)
	}
	if b[offInitialized] > 1 {
		return fmt.Errorf("%w: initialized flag %d", ErrCorruptRecord, b[offInitialized])
	}

	*r = Record{
		MasterSeed:    binary.LittleEndian.Uint32(b[offMaster:]),
		SessionSeed:   binary.LittleEndian.Uint32(b[offSession:]),
		HardwareSeed:  binary.LittleEndian.Uint32(b[offHardware:]),
		CreationTime:  int64(binary.LittleEndian.Uint64(b[offCreation:])),
		BootCount:     binary.LittleEndian.Uint32(b[offBootCount:]),
		IsInitialized: b[offInitialized] == 1,
	}

	return nil
}
