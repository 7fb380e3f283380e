//go:build windows

package hwseed

import (
	"context"
	"fmt"
)

// collectSamples gathers Windows host identifiers enabled on h via CIM.
func collectSamples(ctx context.Context, h *HardwareEntropy, report *EntropyReport) []string {
	var samples []string

	if h.includeCPU {
		samples = appendSample(samples, func() (string, error) {
			return cimValue(ctx, h.executor, "Win32_Processor", "ProcessorId")
		}, "cpu:", report, SourceCPU, h.logger)
	}

	if h.includeMotherboard {
		samples = appendSample(samples, func() (string, error) {
			return cimValue(ctx, h.executor, "Win32_BaseBoard", "SerialNumber")
		}, "mb:", report, SourceMotherboard, h.logger)
	}

	if h.includeSystemUUID {
		samples = appendSample(samples, func() (string, error) {
			return cimValue(ctx, h.executor, "Win32_ComputerSystemProduct", "UUID")
		}, "uuid:", report, SourceSystemUUID, h.logger)
	}

	if h.includeMAC {
		samples = appendSamples(samples, func() ([]string, error) {
			return collectMACAddresses(h.logger)
		}, "mac:", report, SourceMAC, h.logger)
	}

	if h.includeDisk {
		samples = appendSamples(samples, func() ([]string, error) {
			return cimValues(ctx, h.executor, "Win32_DiskDrive", "SerialNumber")
		}, "disk:", report, SourceDisk, h.logger)
	}

	return samples
}

// cimValue returns the first usable value of class.property.
func cimValue(ctx context.Context, executor CommandExecutor, class, property string) (string, error) {
	values, err := cimValues(ctx, executor, class, property)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%s.%s: no value", class, property)
	}

	return values[0], nil
}

// cimValues queries class.property through PowerShell Get-CimInstance and
// drops empty and OEM placeholder values.
func cimValues(ctx context.Context, executor CommandExecutor, class, property string) ([]string, error) {
	out, err := executeCommand(ctx, executor, "powershell", "-NoProfile", "-Command",
		fmt.Sprintf("Get-CimInstance -ClassName %s | Select-Object -ExpandProperty %s", class, property))
	if err != nil {
		return nil, err
	}

	var values []string
	for _, v := range nonEmptyLines(out) {
		if v != biosFirmwareMessage {
			values = append(values, v)
		}
	}

	return values, nil
}
