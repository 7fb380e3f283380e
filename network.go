package hwseed

import (
	"log/slog"
	"net"
	"slices"
	"strings"
)

// virtualInterfacePrefixes are name prefixes of VPN, bridge, container and
// hypervisor interfaces. Their addresses come and go with software, so they
// are not hardware entropy.
var virtualInterfacePrefixes = []string{
	"utun", "tun", "tap", "ipsec", "ppp",
	"docker", "br-", "veth",
	"virbr", "vnet", "vmnet",
	"bridge",
	"lo",
	"wg",
	"vnic", "vboxnet",
}

// collectMACAddresses returns the sorted MAC addresses of physical interfaces
// that are up.
func collectMACAddresses(logger *slog.Logger) ([]string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var macs []string
	for _, iface := range interfaces {
		if !isPhysicalInterface(iface) {
			if logger != nil {
				logger.Debug("skipping interface", "interface", iface.Name)
			}

			continue
		}

		macs = append(macs, iface.HardwareAddr.String())
	}
	slices.Sort(macs)

	return macs, nil
}

// isPhysicalInterface reports whether iface is up, has an address and is not
// loopback or virtual.
func isPhysicalInterface(iface net.Interface) bool {
	if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
		return false
	}
	if iface.Flags&net.FlagUp == 0 {
		return false
	}

	return !isVirtualInterface(iface.Name)
}

// isVirtualInterface reports whether name matches a virtual interface prefix.
func isVirtualInterface(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range virtualInterfacePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	return false
}
