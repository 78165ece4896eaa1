package hostsfile

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
	"github.com/auto-dns/docker-hosts-sync/internal/util"
)

// NameSet maps IP addresses to the ordered, deduplicated set of names that
// should resolve to them. IPs keep first-seen order so output stays stable
// across cycles that observe the same containers.
type NameSet struct {
	order []string
	names map[string][]string
	seen  map[string]mapset.Set[string]
}

func NewNameSet() *NameSet {
	return &NameSet{
		names: make(map[string][]string),
		seen:  make(map[string]mapset.Set[string]),
	}
}

// Add appends names for ip, keeping only first occurrences. Two containers
// landing on the same IP merge: names accumulate, they never replace.
func (ns *NameSet) Add(ip string, names ...string) {
	set, ok := ns.seen[ip]
	if !ok {
		set = mapset.NewSet[string]()
		ns.seen[ip] = set
		ns.order = append(ns.order, ip)
	}
	for _, name := range names {
		if set.Add(name) {
			ns.names[ip] = append(ns.names[ip], name)
		}
	}
}

// IPs returns the IP addresses in first-seen order.
func (ns *NameSet) IPs() []string {
	return ns.order
}

// Names returns the ordered names for ip.
func (ns *NameSet) Names(ip string) []string {
	return ns.names[ip]
}

// Len returns the number of distinct IPs.
func (ns *NameSet) Len() int {
	return len(ns.order)
}

// Render serializes the set into managed-section body lines, one per IP.
func (ns *NameSet) Render() []string {
	return util.Map(ns.order, func(ip string) string {
		return ip + " " + strings.Join(ns.names[ip], " ")
	})
}

// BuildNameSet derives the desired IP-to-names mapping from a runtime
// snapshot. For every network attachment the candidate names are the
// container name, its hostname when distinct, and the network aliases, in
// that order; each valid candidate contributes its bare label followed by
// the domain-qualified form. Invalid candidates are dropped, not fatal.
func BuildNameSet(records []domain.ContainerRecord, domainSuffix string, logger zerolog.Logger) *NameSet {
	ns := NewNameSet()
	for _, rec := range records {
		for _, nw := range rec.Networks {
			if nw.IP == "" {
				continue
			}
			for _, candidate := range candidateNames(rec, nw) {
				label := domain.CleanHostLabel(candidate)
				if !domain.IsValidHostLabel(label) {
					logger.Warn().
						Str("container", rec.Name).
						Str("network", nw.Network).
						Str("candidate", candidate).
						Msg("Dropping invalid hostname candidate")
					continue
				}
				ns.Add(nw.IP, label, label+"."+domainSuffix)
			}
		}
	}
	return ns
}

func candidateNames(rec domain.ContainerRecord, nw domain.NetworkAttachment) []string {
	candidates := make([]string, 0, len(nw.Aliases)+2)
	if rec.Name != "" {
		candidates = append(candidates, rec.Name)
	}
	if rec.Hostname != "" && domain.CleanHostLabel(rec.Hostname) != domain.CleanHostLabel(rec.Name) {
		candidates = append(candidates, rec.Hostname)
	}
	aliases := util.Filter(nw.Aliases, func(a string) bool { return a != "" })
	return append(candidates, aliases...)
}
