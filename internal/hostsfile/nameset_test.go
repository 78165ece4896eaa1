package hostsfile

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
)

func TestBuildNameSet(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.ContainerRecord
		suffix  string
		want    []string
	}{
		{
			name: "container name hostname and alias",
			records: []domain.ContainerRecord{
				{
					ID:   "c1",
					Name: "web",
					Networks: []domain.NetworkAttachment{
						{Network: "bridge", IP: "172.18.0.2", Aliases: []string{"nginx"}},
					},
				},
				{
					ID:       "c2",
					Name:     "db",
					Hostname: "postgres",
					Networks: []domain.NetworkAttachment{
						{Network: "bridge", IP: "172.18.0.3"},
					},
				},
			},
			suffix: "base.domain",
			want: []string{
				"172.18.0.2 web web.base.domain nginx nginx.base.domain",
				"172.18.0.3 db db.base.domain postgres postgres.base.domain",
			},
		},
		{
			name: "invalid alias dropped but container name kept",
			records: []domain.ContainerRecord{
				{
					ID:   "c1",
					Name: "api",
					Networks: []domain.NetworkAttachment{
						{Network: "bridge", IP: "172.18.0.4", Aliases: []string{"bad_alias"}},
					},
				},
			},
			suffix: "base.domain",
			want:   []string{"172.18.0.4 api api.base.domain"},
		},
		{
			name: "two containers sharing an ip merge names",
			records: []domain.ContainerRecord{
				{
					ID:   "c1",
					Name: "web",
					Networks: []domain.NetworkAttachment{
						{Network: "shared", IP: "172.18.0.9", Aliases: []string{"frontend"}},
					},
				},
				{
					ID:   "c2",
					Name: "web2",
					Networks: []domain.NetworkAttachment{
						{Network: "shared", IP: "172.18.0.9", Aliases: []string{"frontend"}},
					},
				},
			},
			suffix: "base.domain",
			want: []string{
				"172.18.0.9 web web.base.domain frontend frontend.base.domain web2 web2.base.domain",
			},
		},
		{
			name: "hostname equal to container name not repeated",
			records: []domain.ContainerRecord{
				{
					ID:       "c1",
					Name:     "cache",
					Hostname: "cache",
					Networks: []domain.NetworkAttachment{
						{Network: "bridge", IP: "172.18.0.5"},
					},
				},
			},
			suffix: "base.domain",
			want:   []string{"172.18.0.5 cache cache.base.domain"},
		},
		{
			name: "alias carrying a domain is reduced to its first label",
			records: []domain.ContainerRecord{
				{
					ID:   "c1",
					Name: "proxy",
					Networks: []domain.NetworkAttachment{
						{Network: "bridge", IP: "172.18.0.6", Aliases: []string{"edge.example.com"}},
					},
				},
			},
			suffix: "base.domain",
			want:   []string{"172.18.0.6 proxy proxy.base.domain edge edge.base.domain"},
		},
		{
			name: "attachment without ip skipped",
			records: []domain.ContainerRecord{
				{
					ID:   "c1",
					Name: "detached",
					Networks: []domain.NetworkAttachment{
						{Network: "none", IP: ""},
					},
				},
			},
			suffix: "base.domain",
			want:   []string{},
		},
		{
			name: "container with no valid names skipped",
			records: []domain.ContainerRecord{
				{
					ID:   "c1",
					Name: "bad_name",
					Networks: []domain.NetworkAttachment{
						{Network: "bridge", IP: "172.18.0.7"},
					},
				},
			},
			suffix: "base.domain",
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := BuildNameSet(tt.records, tt.suffix, zerolog.Nop())
			assert.Equal(t, tt.want, ns.Render())
		})
	}
}

func TestBuildNameSetDeterministic(t *testing.T) {
	records := []domain.ContainerRecord{
		{
			ID:       "c1",
			Name:     "web",
			Hostname: "frontend",
			Networks: []domain.NetworkAttachment{
				{Network: "bridge", IP: "172.18.0.2", Aliases: []string{"nginx", "www"}},
				{Network: "backend", IP: "10.0.0.2", Aliases: []string{"web-internal"}},
			},
		},
		{
			ID:   "c2",
			Name: "db",
			Networks: []domain.NetworkAttachment{
				{Network: "backend", IP: "10.0.0.3"},
			},
		},
	}

	first := BuildNameSet(records, "base.domain", zerolog.Nop())
	second := BuildNameSet(records, "base.domain", zerolog.Nop())
	require.Equal(t, first.Render(), second.Render())
	require.Equal(t, first.IPs(), second.IPs())
}

func TestNameSetMergeKeepsFirstSeenOrder(t *testing.T) {
	ns := NewNameSet()
	ns.Add("10.0.0.1", "a")
	ns.Add("10.0.0.2", "b")
	ns.Add("10.0.0.1", "c", "a")

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, ns.IPs())
	assert.Equal(t, []string{"a", "c"}, ns.Names("10.0.0.1"))
	assert.Equal(t, 2, ns.Len())
}
