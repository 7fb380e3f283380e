//go:build linux

package hwseed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseCPUInfo(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "intel",
			content: `processor	: 0
vendor_id	: GenuineIntel
cpu MHz		: 2400.000
model name	: Intel(R) Core(TM) i7-9750H CPU @ 2.60GHz
flags		: fpu vme de pse
`,
			want: "GenuineIntel:Intel(R) Core(TM) i7-9750H CPU @ 2.60GHz:fpu vme de pse",
		},
		{
			name:    "arm without vendor",
			content: "processor\t: 0\nmodel name\t: ARMv8 Processor\n",
			want:    ":ARMv8 Processor:",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
		{
			name:    "no known keys",
			content: "processor\t: 0\nBogoMIPS\t: 48.00\n",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCPUInfo(tt.content); got != tt.want {
				t.Errorf("parseCPUInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstValidFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	zero := filepath.Join(dir, "zero")
	good := filepath.Join(dir, "good")

	writeFile(t, empty, "\n")
	writeFile(t, zero, "00000000-0000-0000-0000-000000000000\n")
	writeFile(t, good, " 4c4c4544-0042-3510-8052-b4c04f564433 \n")

	got, err := firstValidFile([]string{filepath.Join(dir, "missing"), empty, zero, good}, isValidUUID)
	if err != nil {
		t.Fatalf("firstValidFile error: %v", err)
	}
	if got != "4c4c4544-0042-3510-8052-b4c04f564433" {
		t.Errorf("firstValidFile = %q", got)
	}

	if _, err := firstValidFile([]string{empty, zero}, isValidUUID); err == nil {
		t.Error("expected an error when no file is valid")
	}
}

func TestIsValidSerial(t *testing.T) {
	if isValidSerial(biosFirmwareMessage) {
		t.Error("firmware placeholder accepted as serial")
	}
	if isValidSerial("") {
		t.Error("empty serial accepted")
	}
	if !isValidSerial("PF2ABCDE") {
		t.Error("real serial rejected")
	}
}

func TestSysBlockSerials(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sda", "device", "serial"), "WD-123\n")
	writeFile(t, filepath.Join(root, "nvme0n1", "device", "serial"), "S4EWNX0R\n")
	writeFile(t, filepath.Join(root, "loop0", "device", "serial"), "LOOP\n")
	writeFile(t, filepath.Join(root, "sdb", "device", "serial"), "  \n")

	got := sysBlockSerials(root)
	slices.Sort(got)

	if want := []string{"S4EWNX0R", "WD-123"}; !slices.Equal(got, want) {
		t.Errorf("sysBlockSerials = %v, want %v", got, want)
	}

	if sysBlockSerials(filepath.Join(root, "missing")) != nil {
		t.Error("missing root should give no serials")
	}
}

func TestLinuxDiskSerialsUsesLsblk(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput("lsblk", "SERIAL-A\n\nSERIAL-B\nSERIAL-A\n")

	got, err := linuxDiskSerials(context.Background(), mock)
	if err != nil {
		t.Fatalf("linuxDiskSerials error: %v", err)
	}
	if mock.callCount["lsblk"] != 1 {
		t.Errorf("lsblk called %d times", mock.callCount["lsblk"])
	}
	if len(got) < 2 || got[0] != "SERIAL-A" || got[1] != "SERIAL-B" {
		t.Errorf("linuxDiskSerials = %v, want lsblk serials first without duplicates", got)
	}
}

func TestLinuxDiskSerialsLsblkFailure(t *testing.T) {
	mock := newMockExecutor()
	mock.setError("lsblk", &CommandError{Command: "lsblk", Err: errors.New("not found")})

	if _, err := linuxDiskSerials(context.Background(), mock); err != nil {
		t.Errorf("lsblk failure should not fail collection: %v", err)
	}
}

func TestCollectSamplesDiskOnly(t *testing.T) {
	mock := newMockExecutor()
	mock.setOutput("lsblk", "DISK-1")
	h := &HardwareEntropy{executor: mock, includeDisk: true}
	report := &EntropyReport{Errors: make(map[string]error)}

	samples := collectSamples(context.Background(), h, report)
	if !slices.Contains(samples, "disk:DISK-1") {
		t.Errorf("samples = %v, want disk:DISK-1", samples)
	}
	if !slices.Contains(report.Collected, SourceDisk) {
		t.Errorf("Collected = %v", report.Collected)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
