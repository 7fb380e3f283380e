//go:build darwin

package hwseed

import (
	"context"
	"errors"
	"testing"
)

const sampleIoreg = `+-o Root  <class IORegistryEntry, id 0x100000100, retain 25>
  +-o MacBookPro18,3  <class IOPlatformExpertDevice, id 0x100000110, registered, matched, active, busy 0 (193 ms), retain 37>
      {
        "IOPlatformSerialNumber" = "C02XL0GHJGH5"
        "IOPlatformUUID" = "A1B2C3D4-E5F6-7890-ABCD-EF1234567890"
      }`

func TestIoregField(t *testing.T) {
	uuid, err := ioregField(sampleIoreg, nil, ioregUUIDRe)
	if err != nil || uuid != "A1B2C3D4-E5F6-7890-ABCD-EF1234567890" {
		t.Errorf("uuid = %q, %v", uuid, err)
	}

	serial, err := ioregField(sampleIoreg, nil, ioregSerialRe)
	if err != nil || serial != "C02XL0GHJGH5" {
		t.Errorf("serial = %q, %v", serial, err)
	}

	if _, err := ioregField("{}", nil, ioregUUIDRe); err == nil {
		t.Error("expected error for missing field")
	}

	cmdErr := &CommandError{Command: "ioreg", Err: errors.New("exit status 1")}
	if _, err := ioregField(sampleIoreg, cmdErr, ioregUUIDRe); !errors.Is(err, cmdErr) {
		t.Errorf("command error not propagated: %v", err)
	}
}

func TestParseStorageJSON(t *testing.T) {
	out := `{"SPStorageDataType":[
		{"physical_drive":{"device_name":"APPLE SSD AP0512Q","is_internal_disk":"yes"}},
		{"physical_drive":{"device_name":"APPLE SSD AP0512Q","is_internal_disk":"yes"}},
		{"physical_drive":{"device_name":"USB Stick","is_internal_disk":"no"}}
	]}`

	names, err := parseStorageJSON(out)
	if err != nil {
		t.Fatalf("parseStorageJSON error: %v", err)
	}
	if len(names) != 1 || names[0] != "APPLE SSD AP0512Q" {
		t.Errorf("names = %v", names)
	}

	if _, err := parseStorageJSON("not json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDarwinCPUInfo(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput("sysctl", "Apple M1 Pro")

	got, err := darwinCPUInfo(context.Background(), mock)
	if err != nil {
		t.Fatalf("darwinCPUInfo error: %v", err)
	}
	// The mock answers both sysctl calls with the same output.
	if got != "Apple M1 Pro:Apple M1 Pro" {
		t.Errorf("darwinCPUInfo = %q", got)
	}
	if mock.callCount["sysctl"] != 2 {
		t.Errorf("sysctl called %d times, want 2", mock.callCount["sysctl"])
	}
}

func TestCollectSamplesSharesIoregCall(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput("ioreg", sampleIoreg)
	h := &HardwareEntropy{executor: mock, includeSystemUUID: true, includeMotherboard: true}
	report := &EntropyReport{Errors: make(map[string]error)}

	samples := collectSamples(context.Background(), h, report)
	if len(samples) != 2 {
		t.Errorf("samples = %v, want uuid and serial", samples)
	}
	if mock.callCount["ioreg"] != 1 {
		t.Errorf("ioreg called %d times, want 1", mock.callCount["ioreg"])
	}
}
