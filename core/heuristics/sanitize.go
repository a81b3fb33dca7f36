package heuristics

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxNameLength = 64
	maxMACLength  = 13
	defaultMTU    = 1500
	maxMTU        = 65536
)

var (
	osWordPattern      = regexp.MustCompile(`^[a-zA-Z]+\s`)
	switchMemberSuffix = regexp.MustCompile(`-\s*Switch\s*(\d+)`)
	nodeMemberSuffix   = regexp.MustCompile(`-\s*Node\s*(\d+)`)

	invisible = strings.NewReplacer("\u200b", "", "\r", "")
)

// Sanitize removes zero-width spaces and carriage returns.
func Sanitize(s string) string {
	return invisible.Replace(s)
}

// DeviceName sanitizes and truncates a device or cluster name.
func DeviceName(name string) string {
	return truncate(strings.TrimSpace(Sanitize(name)), maxNameLength)
}

// MACAddress truncates a hardware address the way Device42 exports it.
func MACAddress(mac string) string {
	return truncate(strings.TrimSpace(mac), maxMACLength)
}

// MTU returns mtu when it is within 1..65536, otherwise the default 1500.
func MTU(mtu int) int {
	if mtu < 1 || mtu > maxMTU {
		return defaultMTU
	}
	return mtu
}

// OSVersion strips a leading OS word, so "IOS 15.2(4)" becomes "15.2(4)".
func OSVersion(v string) string {
	return osWordPattern.ReplaceAllString(Sanitize(v), "")
}

// ChassisPosition derives the virtual chassis position of a cluster member.
// The master holds 0. Members named "... - Switch N" hold N (at least 1), "... - Node N" hold N+1,
// any other member holds its index in the member list plus one.
func ChassisPosition(name string, index int, master bool) int {
	if master {
		return 0
	}
	if m := switchMemberSuffix.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return max(n, 1)
	}
	if m := nodeMemberSuffix.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n + 1
	}
	return index + 1
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
