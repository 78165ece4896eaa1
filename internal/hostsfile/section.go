package hostsfile

import (
	"fmt"
	"strings"
)

// Sentinel lines delimiting the managed span of the hosts file. Everything
// outside them is opaque and preserved byte for byte.
const (
	BeginMarker = "# BEGIN DOCKER CONTAINERS"
	EndMarker   = "# END DOCKER CONTAINERS"
)

// renderSection produces the full managed block, markers included, with a
// trailing newline.
func renderSection(body []string) string {
	var b strings.Builder
	b.WriteString(BeginMarker)
	b.WriteByte('\n')
	for _, line := range body {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(EndMarker)
	b.WriteByte('\n')
	return b.String()
}

// ParseSection reconstructs a NameSet from managed-section body lines.
func ParseSection(body []string) (*NameSet, error) {
	ns := NewNameSet()
	for _, line := range body {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed managed section line: %q", line)
		}
		ns.Add(fields[0], fields[1:]...)
	}
	return ns, nil
}
