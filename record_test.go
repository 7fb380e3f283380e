package hwseed

import (
	"errors"
	"testing"
	"time"
)

func TestRecordBinaryRoundTrip(t *testing.T) {
	rec := Record{
		MasterSeed:    0xDEADBEEF,
		SessionSeed:   0x0BADF00D,
		HardwareSeed:  0x12345678,
		CreationTime:  timeToTicks(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)),
		BootCount:     7,
		IsInitialized: true,
	}

	data, err := rec.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary error: %v", err)
	}
	if len(data) != RecordSize {
		t.Fatalf("encoded length %d, want %d", len(data), RecordSize)
	}
	if string(data[:4]) != "HWSD" {
		t.Errorf("magic = %q", data[:4])
	}

	var got Record
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary error: %v", err)
	}
	if got != rec {
		t.Errorf("round trip = %+v, want %+v", got, rec)
	}
}

func TestRecordLayoutOffsets(t *testing.T) {
	rec := Record{MasterSeed: 0x04030201, HardwareSeed: 0x0C0B0A09, BootCount: 0x11111111, IsInitialized: true}
	data, _ := rec.MarshalBinary()

	if data[offMaster] != 0x01 || data[offMaster+3] != 0x04 {
		t.Errorf("master seed not little endian at offset %d: % x", offMaster, data[offMaster:offMaster+4])
	}
	if data[offHardware] != 0x09 {
		t.Errorf("hardware seed at wrong offset: % x", data[offHardware:offHardware+4])
	}
	if data[offInitialized] != 1 {
		t.Errorf("initialized byte = %d", data[offInitialized])
	}
}

func TestRecordUnmarshalRejectsCorruption(t *testing.T) {
	good, _ := Record{MasterSeed: 1, IsInitialized: true}.MarshalBinary()

	mutate := func(f func([]byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", good[:RecordSize-1]},
		{"long", append(append([]byte(nil), good...), 0)},
		{"bad magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"future version", mutate(func(b []byte) []byte { b[offVersion] = 2; return b })},
		{"flipped seed bit", mutate(func(b []byte) []byte { b[offMaster] ^= 0x80; return b })},
		{"bad checksum", mutate(func(b []byte) []byte { b[RecordSize-1] ^= 0xFF; return b })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			if err := rec.UnmarshalBinary(tt.data); !errors.Is(err, ErrCorruptRecord) {
				t.Errorf("UnmarshalBinary error = %v, want ErrCorruptRecord", err)
			}
		})
	}
}

func TestRecordCreated(t *testing.T) {
	when := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)
	rec := Record{CreationTime: timeToTicks(when)}

	if got := rec.Created(); !got.Equal(when) {
		t.Errorf("Created() = %v, want %v", got, when)
	}

	unix := Record{CreationTime: epochOffsetTicks}
	if got := unix.Created(); !got.Equal(time.Unix(0, 0)) {
		t.Errorf("epoch offset maps to %v, want Unix epoch", got)
	}
}
