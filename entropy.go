package hwseed

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Host identifier sources consulted by [HardwareEntropy], used as keys in
// [EntropyReport].
const (
	SourceCPU         = "cpu"
	SourceMotherboard = "motherboard"
	SourceSystemUUID  = "uuid"
	SourceMAC         = "mac"
	SourceDisk        = "disk"
	SourceMachineID   = "machine-id" // Linux systemd machine-id
)

// biosFirmwareMessage is the placeholder many firmwares report instead of a
// real serial number.
const biosFirmwareMessage = "To be filled by O.E.M."

// EntropyReport describes the last collection performed by [HardwareEntropy].
type EntropyReport struct {
	Errors    map[string]error // source names that failed with their errors
	Collected []string         // source names that were collected
}

// HardwareEntropy is an [EntropySource] that reads identifiers of the host
// (CPU, board serial, system UUID, MAC addresses, disk serials) and folds them
// into one 32-bit value. The value is stable for unchanged hardware.
type HardwareEntropy struct {
	executor CommandExecutor
	logger   *slog.Logger

	includeCPU         bool
	includeMotherboard bool
	includeSystemUUID  bool
	includeMAC         bool
	includeDisk        bool

	mu     sync.Mutex
	report *EntropyReport
}

// NewHardwareEntropy returns a source that consults every identifier.
func NewHardwareEntropy() *HardwareEntropy {
	return &HardwareEntropy{
		executor:           &defaultCommandExecutor{Timeout: commandTimeout},
		includeCPU:         true,
		includeMotherboard: true,
		includeSystemUUID:  true,
		includeMAC:         true,
		includeDisk:        true,
	}
}

// WithExecutor sets a custom [CommandExecutor].
func (h *HardwareEntropy) WithExecutor(executor CommandExecutor) *HardwareEntropy {
	h.executor = executor

	return h
}

// WithLogger sets an optional [*slog.Logger].
func (h *HardwareEntropy) WithLogger(logger *slog.Logger) *HardwareEntropy {
	h.logger = logger

	return h
}

// VMFriendly restricts collection to the CPU and system UUID, which survive
// NIC and disk changes of virtual machines.
func (h *HardwareEntropy) VMFriendly() *HardwareEntropy {
	h.includeCPU = true
	h.includeSystemUUID = true
	h.includeMotherboard = false
	h.includeMAC = false
	h.includeDisk = false

	return h
}

// HardwareSeed collects the enabled identifiers and folds them into a seed.
// It returns [ErrNoIdentifiers] when nothing could be collected.
func (h *HardwareEntropy) HardwareSeed(ctx context.Context) (uint32, error) {
	report := &EntropyReport{Errors: make(map[string]error)}
	samples := collectSamples(ctx, h, report)

	h.mu.Lock()
	h.report = report
	h.mu.Unlock()

	if len(samples) == 0 {
		if h.logger != nil {
			h.logger.Warn("no hardware identifiers collected", "errors", report.Errors)
		}

		return 0, ErrNoIdentifiers
	}

	if h.logger != nil {
		h.logger.Debug("hardware identifiers collected", "collected", report.Collected, "count", len(samples))
	}

	return foldSamples(samples), nil
}

// Report returns the outcome of the last [HardwareEntropy.HardwareSeed] call,
// or nil before the first call.
func (h *HardwareEntropy) Report() *EntropyReport {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.report
}

// foldSamples hashes the sorted samples with xxhash and folds the 64-bit
// digest to 32 bits. Sorting makes the result independent of collection order.
func foldSamples(samples []string) uint32 {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	sum := xxhash.Sum64String(strings.Join(sorted, "|"))

	return uint32(sum) ^ uint32(sum>>32)
}

// appendSample adds prefix+value to samples when getValue succeeds with a
// non-empty value, recording the outcome under source in report.
func appendSample(samples []string, getValue func() (string, error), prefix string, report *EntropyReport, source string, logger *slog.Logger) []string {
	value, err := getValue()
	if err == nil && value == "" {
		err = ErrNoIdentifiers
	}
	if err != nil {
		report.Errors[source] = &SourceError{Source: source, Err: err}
		if logger != nil {
			logger.Debug("entropy source failed", "source", source, "error", err)
		}

		return samples
	}

	report.Collected = append(report.Collected, source)

	return append(samples, prefix+value)
}

// appendSamples is appendSample for sources yielding several values.
func appendSamples(samples []string, getValues func() ([]string, error), prefix string, report *EntropyReport, source string, logger *slog.Logger) []string {
	values, err := getValues()
	if err == nil && len(values) == 0 {
		err = ErrNoIdentifiers
	}
	if err != nil {
		report.Errors[source] = &SourceError{Source: source, Err: err}
		if logger != nil {
			logger.Debug("entropy source failed", "source", source, "error", err)
		}

		return samples
	}

	report.Collected = append(report.Collected, source)
	for _, v := range values {
		samples = append(samples, prefix+v)
	}

	return samples
}

// nonEmptyLines splits command output into trimmed, non-empty lines.
func nonEmptyLines(out string) []string {
	var lines []string
	for line := range strings.SplitSeq(out, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			lines = append(lines, v)
		}
	}

	return lines
}
