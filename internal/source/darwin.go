//go:build darwin

package source

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const netstatTimeout = 2 * time.Second

// netstatSource samples interface byte counters via `netstat -ibn`
// and reports an aggregate rx+tx bytes-per-second rate.
type netstatSource struct {
	iface string // "" = all non-loopback interfaces

	lastTotal uint64
	lastAt    time.Time
	primed    bool
}

// newPlatformSource creates the macOS byte-rate source, probing
// netstat once so a missing binary fails construction instead of the
// first poll.
func newPlatformSource(iface string) (Source, error) {
	if iface == "" {
		iface = DetectDefaultInterface()
	}
	s := &netstatSource{iface: iface}
	if _, err := s.readTotal(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *netstatSource) Name() string {
	if s.iface != "" {
		return s.iface + " B/s"
	}
	return "all ifaces B/s"
}

// Sample returns the byte rate since the previous call, normalized to
// bytes per second. The first call primes the counter and returns 0.
func (s *netstatSource) Sample() (int64, error) {
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
	s.lastTotal, s.lastAt = total, now

	return int64(delta) * int64(time.Second) / int64(elapsed), nil
}

func (s *netstatSource) readTotal() (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), netstatTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "netstat", "-ibn").Output()
	if err != nil {
		return 0, fmt.Errorf("netstat -ibn: %w", err)
	}
	return parseNetstatIB(string(out), s.iface)
}

// parseNetstatIB parses `netstat -ibn` output:
//
//	Name  Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
//	lo0   16384 <Link#1>                         12345     0    1234567    12345     0    1234567     0
//	en0   1500  <Link#4>      a1:b2:c3:d4:e5:f6  99999     0  987654321    88888     0  123456789     0
//	en0   1500  192.168.1     192.168.1.5        99999     -  987654321    88888     -  123456789     -
//
// Interfaces repeat once per address; only the <Link#N> rows carry the
// canonical counters, so the others are skipped.
func parseNetstatIB(output, iface string) (uint64, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))

	// The Address column may be empty (utun, gif), shifting field
	// indices, so counter columns are located relative to the end of
	// each row using offsets taken from the header.
	ibytesOff, obytesOff := -1, -1
	if scanner.Scan() {
		header := strings.Fields(scanner.Text())
		for i, col := range header {
			switch col {
			case "Ibytes":
				ibytesOff = len(header) - i
			case "Obytes":
				obytesOff = len(header) - i
			}
		}
	}
	if ibytesOff < 0 || obytesOff < 0 {
		return 0, fmt.Errorf("unexpected netstat header")
	}

	var total uint64
	matched := false
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < ibytesOff || len(fields) < 3 {
			continue
		}
		name := fields[0]
		if !strings.HasPrefix(fields[2], "<Link") {
			continue
		}
		if strings.HasPrefix(name, "lo") {
			continue
		}
		if iface != "" && name != iface {
			continue
		}
		rx, err := strconv.ParseUint(fields[len(fields)-ibytesOff], 10, 64)
		if err != nil {
			continue
		}
		tx, err := strconv.ParseUint(fields[len(fields)-obytesOff], 10, 64)
		if err != nil {
			continue
		}
		total += rx + tx
		matched = true
	}
	if !matched {
		return 0, fmt.Errorf("no matching interface in netstat output (iface=%q)", iface)
	}
	return total, nil
}
