//go:build darwin

package hwseed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Patterns for `ioreg -d2 -c IOPlatformExpertDevice` output.
var (
	ioregUUIDRe   = regexp.MustCompile(`"IOPlatformUUID"\s*=\s*"([^"]+)"`)
	ioregSerialRe = regexp.MustCompile(`"IOPlatformSerialNumber"\s*=\s*"([^"]+)"`)
)

// spStorage is the subset of `system_profiler SPStorageDataType -json` we read.
type spStorage struct {
	Entries []struct {
		PhysicalDrive struct {
			DeviceName string `json:"device_name"`
			IsInternal string `json:"is_internal_disk"`
		} `json:"physical_drive"`
	} `json:"SPStorageDataType"`
}

// collectSamples gathers macOS host identifiers enabled on h.
func collectSamples(ctx context.Context, h *HardwareEntropy, report *EntropyReport) []string {
	var samples []string

	// Both platform values come from one ioreg call.
	var platform string
	var platformErr error
	if h.includeSystemUUID || h.includeMotherboard {
		platform, platformErr = executeCommand(ctx, h.executor, "ioreg", "-d2", "-c", "IOPlatformExpertDevice")
	}

	if h.includeSystemUUID {
		samples = appendSample(samples, func() (string, error) {
			return ioregField(platform, platformErr, ioregUUIDRe)
		}, "uuid:", report, SourceSystemUUID, h.logger)
	}

	if h.includeMotherboard {
		samples = appendSample(samples, func() (string, error) {
			return ioregField(platform, platformErr, ioregSerialRe)
		}, "serial:", report, SourceMotherboard, h.logger)
	}

	if h.includeCPU {
		samples = appendSample(samples, func() (string, error) {
			return darwinCPUInfo(ctx, h.executor)
		}, "cpu:", report, SourceCPU, h.logger)
	}

	if h.includeMAC {
		samples = appendSamples(samples, func() ([]string, error) {
			return collectMACAddresses(h.logger)
		}, "mac:", report, SourceMAC, h.logger)
	}

	if h.includeDisk {
		samples = appendSamples(samples, func() ([]string, error) {
			out, err := executeCommand(ctx, h.executor, "system_profiler", "SPStorageDataType", "-json")
			if err != nil {
				return nil, err
			}

			return parseStorageJSON(out)
		}, "disk:", report, SourceDisk, h.logger)
	}

	return samples
}

func ioregField(output string, err error, re *regexp.Regexp) (string, error) {
	if err != nil {
		return "", err
	}
	if m := re.FindStringSubmatch(output); len(m) > 1 {
		return m[1], nil
	}

	return "", fmt.Errorf("%s not found in ioreg output", re.String())
}

// darwinCPUInfo returns the brand string, with feature flags on Intel.
func darwinCPUInfo(ctx context.Context, executor CommandExecutor) (string, error) {
	brand, err := executeCommand(ctx, executor, "sysctl", "-n", "machdep.cpu.brand_string")
	if err != nil {
		return "", err
	}
	if brand == "" {
		return "", errors.New("empty cpu brand string")
	}

	if features, err := executeCommand(ctx, executor, "sysctl", "-n", "machdep.cpu.features"); err == nil {
		return brand + ":" + strings.TrimSpace(features), nil
	}

	return brand, nil
}

// parseStorageJSON returns the unique device names of internal disks.
func parseStorageJSON(out string) ([]string, error) {
	var storage spStorage
	if err := json.Unmarshal([]byte(out), &storage); err != nil {
		return nil, fmt.Errorf("parse storage JSON: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, e := range storage.Entries {
		name := e.PhysicalDrive.DeviceName
		if name == "" || e.PhysicalDrive.IsInternal != "yes" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, nil
}
