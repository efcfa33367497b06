//go:build linux

package source

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/mdlayher/netlink"
)

const (
	// Netlink constants for NETLINK_ROUTE link dumps
	netlinkRoute = 0  // NETLINK_ROUTE
	rtmGetLink   = 18 // RTM_GETLINK
	iflaIfname   = 3  // IFLA_IFNAME
	iflaStats64  = 23 // IFLA_STATS64

	iffLoopback = 0x8 // IFF_LOOPBACK
)

// ifInfomsg is the wire format of the RTM_GETLINK request payload (16 bytes).
type ifInfomsg struct {
	Family uint8
	_      uint8
	Type   uint16
	Index  int32
	Flags  uint32
	Change uint32
}

// byteRateSource samples interface byte counters and reports an
// aggregate rx+tx bytes-per-second rate. It prefers rtnetlink
// RTM_GETLINK dumps (IFLA_STATS64) and falls back to parsing
// /proc/net/dev when the netlink socket is unavailable.
type byteRateSource struct {
	// conn is the NETLINK_ROUTE connection. nil when falling back to /proc.
	conn *netlink.Conn

	// useProc is true when counters come from /proc/net/dev instead of
	// netlink (e.g. netlink socket creation denied in a sandbox).
	useProc bool

	// iface restricts counting to one interface name; "" sums all
	// non-loopback interfaces.
	iface string

	lastTotal uint64
	lastAt    time.Time
	primed    bool
}

// newPlatformSource creates the Linux byte-rate source. It probes
// netlink first and transparently falls back to /proc/net/dev; an
// error means neither counter source works.
func newPlatformSource(iface string) (Source, error) {
	if iface == "" {
		iface = DetectDefaultInterface()
	}
	s := &byteRateSource{iface: iface}

	conn, err := netlink.Dial(netlinkRoute, nil)
	if err != nil {
		log.Printf("emascope: netlink dial failed, trying /proc/net/dev: %v", err)
	} else if _, probeErr := readLinkCounters(conn, iface); probeErr != nil {
		conn.Close()
		log.Printf("emascope: netlink link dump failed, trying /proc/net/dev: %v", probeErr)
	} else {
		s.conn = conn
		return s, nil
	}

	if _, err := readProcNetDev(iface); err != nil {
		return nil, fmt.Errorf("no byte counters available: %w", err)
	}
	s.useProc = true
	return s, nil
}

func (s *byteRateSource) Name() string {
	if s.iface != "" {
		return s.iface + " B/s"
	}
	return "all ifaces B/s"
}

// Sample returns the byte rate since the previous call, normalized to
// bytes per second. The first call primes the counter and returns 0.
func (s *byteRateSource) Sample() (int64, error) {
	total, err := s.readTotal()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	if !s.primed {
		s.lastTotal, s.lastAt, s.primed = total, now, true
		return 0, nil
	}

	elapsed := now.Sub(s.lastAt)
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	var delta uint64
	if total >= s.lastTotal {
		delta = total - s.lastTotal
	}
	// counter reset (interface bounced): report 0 for this poll
	s.lastTotal, s.lastAt = total, now

	return int64(delta) * int64(time.Second) / int64(elapsed), nil
}

func (s *byteRateSource) readTotal() (uint64, error) {
	if s.useProc {
		return readProcNetDev(s.iface)
	}
	total, err := readLinkCounters(s.conn, s.iface)
	if err != nil {
		// Netlink died at runtime; switch to /proc permanently.
		log.Printf("emascope: netlink query failed at runtime, falling back to /proc/net/dev: %v", err)
		s.useProc = true
		if s.conn != nil {
			s.conn.Close()
			s.conn = nil
		}
		return readProcNetDev(s.iface)
	}
	return total, nil
}

func (s *byteRateSource) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// readLinkCounters dumps all links via RTM_GETLINK and sums rx+tx
// bytes from the IFLA_STATS64 attributes. Loopback is skipped; a
// non-empty iface restricts the sum to that interface name.
func readLinkCounters(conn *netlink.Conn, iface string) (uint64, error) {
	req := ifInfomsg{}
	reqBytes := (*[unsafe.Sizeof(req)]byte)(unsafe.Pointer(&req))[:]

	msg := netlink.Message{
		Header: netlink.Header{
			Type:  rtmGetLink,
			Flags: netlink.Request | netlink.Dump,
		},
		Data: reqBytes,
	}

	msgs, err := conn.Execute(msg)
	if err != nil {
		return 0, err
	}

	var total uint64
	matched := false
	for _, m := range msgs {
		name, flags, bytes, err := parseLinkMsg(m.Data)
		if err != nil {
			continue
		}
		if flags&iffLoopback != 0 {
			continue
		}
		if iface != "" && name != iface {
			continue
		}
		total += bytes
		matched = true
	}
	if !matched {
		return 0, fmt.Errorf("no matching interface in link dump (iface=%q)", iface)
	}
	return total, nil
}

// parseLinkMsg extracts the interface name, flags and rx+tx byte total
// from one RTM_NEWLINK message.
func parseLinkMsg(data []byte) (name string, flags uint32, bytes uint64, err error) {
	if len(data) < int(unsafe.Sizeof(ifInfomsg{})) {
		return "", 0, 0, fmt.Errorf("link message too short: %d", len(data))
	}
	info := (*ifInfomsg)(unsafe.Pointer(&data[0]))
	flags = info.Flags

	attrs, err := netlink.UnmarshalAttributes(data[unsafe.Sizeof(ifInfomsg{}):])
	if err != nil {
		return "", 0, 0, err
	}

	for _, attr := range attrs {
		switch int(attr.Type) {
		case iflaIfname:
			name = strings.TrimRight(string(attr.Data), "\x00")
		case iflaStats64:
			// struct rtnl_link_stats64: u64 rx_packets, tx_packets,
			// rx_bytes (offset 16), tx_bytes (offset 24), ...
			if len(attr.Data) >= 32 {
				bytes = binary.LittleEndian.Uint64(attr.Data[16:24]) +
					binary.LittleEndian.Uint64(attr.Data[24:32])
			}
		}
	}
	return name, flags, bytes, nil
}

// readProcNetDev sums rx+tx bytes from /proc/net/dev.
func readProcNetDev(iface string) (uint64, error) {
	f, err := os.Open("/proc/net/dev")
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return parseProcNetDev(f, iface)
}

// parseProcNetDev parses /proc/net/dev content. The layout (after two
// header lines) is:
//
//	  eth0: 1234567    8901    0    0    0     0          0         0  7654321    4567    0    0    0     0       0          0
//
// where the first field after the colon is rx_bytes and the ninth is
// tx_bytes. The interface name may be glued to the first counter
// ("eth0:1234"), so the colon is split explicitly.
func parseProcNetDev(r io.Reader, iface string) (uint64, error) {
	scanner := bufio.NewScanner(r)

	var total uint64
	matched := false
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue // header lines
		}
		name := strings.TrimSpace(line[:idx])
		if name == "lo" {
			continue
		}
		if iface != "" && name != iface {
			continue
		}

		fields := strings.Fields(line[idx+1:])
		if len(fields) < 9 {
			continue
		}
		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			continue
		}
		total += rx + tx
		matched = true
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if !matched {
		return 0, fmt.Errorf("no matching interface in /proc/net/dev (iface=%q)", iface)
	}
	return total, nil
}
