package source

import "net"

// DetectDefaultInterface returns the name of the interface that owns
// the default route, found by binding a UDP socket (no traffic is
// sent) toward a public address and matching the chosen local IP
// against the interface list. Falls back to the first non-loopback UP
// interface, or "" when nothing qualifies.
func DetectDefaultInterface() string {
	conn, err := net.Dial("udp4", "8.8.8.8:53")
	if err != nil {
		return fallbackInterface()
	}
	defer conn.Close()

	localIP := conn.LocalAddr().(*net.UDPAddr).IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip != nil && ip.Equal(localIP) {
				return iface.Name
			}
		}
	}

	return fallbackInterface()
}

func fallbackInterface() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		if len(addrs) > 0 {
			return iface.Name
		}
	}
	return ""
}
