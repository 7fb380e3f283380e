//go:build !linux && !darwin && !windows

package hwseed

import "context"

// collectSamples falls back to MAC addresses on platforms without a
// dedicated collector.
func collectSamples(_ context.Context, h *HardwareEntropy, report *EntropyReport) []string {
	var samples []string

	if h.includeMAC {
		samples = appendSamples(samples, func() ([]string, error) {
			return collectMACAddresses(h.logger)
		}, "mac:", report, SourceMAC, h.logger)
	}

	return samples
}
