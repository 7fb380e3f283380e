//go:build linux

package hwseed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Sysfs and procfs locations read on Linux.
var (
	linuxUUIDPaths      = []string{"/sys/class/dmi/id/product_uuid", "/sys/devices/virtual/dmi/id/product_uuid"}
	linuxBoardPaths     = []string{"/sys/class/dmi/id/board_serial", "/sys/devices/virtual/dmi/id/board_serial"}
	linuxMachineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}
)

// collectSamples gathers Linux host identifiers enabled on h.
func collectSamples(ctx context.Context, h *HardwareEntropy, report *EntropyReport) []string {
	var samples []string

	if h.includeCPU {
		samples = appendSample(samples, linuxCPUInfo, "cpu:", report, SourceCPU, h.logger)
	}

	if h.includeSystemUUID {
		samples = appendSample(samples, func() (string, error) {
			return firstValidFile(linuxUUIDPaths, isValidUUID)
		}, "uuid:", report, SourceSystemUUID, h.logger)
		samples = appendSample(samples, func() (string, error) {
			return firstValidFile(linuxMachineIDPaths, isNonEmpty)
		}, "machine:", report, SourceMachineID, h.logger)
	}

	if h.includeMotherboard {
		samples = appendSample(samples, func() (string, error) {
			return firstValidFile(linuxBoardPaths, isValidSerial)
		}, "mb:", report, SourceMotherboard, h.logger)
	}

	if h.includeMAC {
		samples = appendSamples(samples, func() ([]string, error) {
			return collectMACAddresses(h.logger)
		}, "mac:", report, SourceMAC, h.logger)
	}

	if h.includeDisk {
		samples = appendSamples(samples, func() ([]string, error) {
			return linuxDiskSerials(ctx, h.executor)
		}, "disk:", report, SourceDisk, h.logger)
	}

	return samples
}

// linuxCPUInfo summarizes /proc/cpuinfo.
func linuxCPUInfo() (string, error) {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return "", err
	}

	return parseCPUInfo(string(data)), nil
}

// parseCPUInfo keeps the vendor, model name and flags of the last processor
// block. Per-core fields such as MHz are ignored since they fluctuate.
func parseCPUInfo(content string) string {
	var vendorID, modelName, flags string

	for line := range strings.SplitSeq(content, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case "vendor_id":
			vendorID = strings.TrimSpace(value)
		case "model name":
			modelName = strings.TrimSpace(value)
		case "flags":
			flags = strings.TrimSpace(value)
		}
	}

	if vendorID == "" && modelName == "" && flags == "" {
		return ""
	}

	return vendorID + ":" + modelName + ":" + flags
}

// firstValidFile returns the trimmed content of the first file accepted by valid.
func firstValidFile(paths []string, valid func(string) bool) (string, error) {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(data)); valid(v) {
			return v, nil
		}
	}

	return "", errors.New("no valid value in " + strings.Join(paths, ", "))
}

func isValidUUID(v string) bool {
	return v != "" && v != "00000000-0000-0000-0000-000000000000"
}

func isValidSerial(v string) bool {
	return v != "" && v != biosFirmwareMessage
}

func isNonEmpty(v string) bool {
	return v != ""
}

// linuxDiskSerials merges serials reported by lsblk and /sys/block,
// dropping duplicates.
func linuxDiskSerials(ctx context.Context, executor CommandExecutor) ([]string, error) {
	seen := make(map[string]struct{})
	var serials []string
	add := func(values []string) {
		for _, s := range values {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				serials = append(serials, s)
			}
		}
	}

	if out, err := executeCommand(ctx, executor, "lsblk", "-d", "-n", "-o", "SERIAL"); err == nil {
		add(nonEmptyLines(out))
	}

	add(sysBlockSerials("/sys/block"))

	return serials, nil
}

// sysBlockSerials reads device/serial of every non-loop block device under root.
func sysBlockSerials(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var serials []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "loop") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, e.Name(), "device", "serial"))
		if err != nil {
			continue
		}
		if s := strings.TrimSpace(string(data)); s != "" {
			serials = append(serials, s)
		}
	}

	return serials
}
