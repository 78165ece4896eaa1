package hostsfile

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
)

func TestRenderParseRoundTrip(t *testing.T) {
	records := []domain.ContainerRecord{
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
	}
	ns := BuildNameSet(records, "base.domain", zerolog.Nop())

	parsed, err := ParseSection(ns.Render())
	require.NoError(t, err)

	assert.Equal(t, ns.IPs(), parsed.IPs())
	for _, ip := range ns.IPs() {
		assert.Equal(t, ns.Names(ip), parsed.Names(ip))
	}
	assert.Equal(t, ns.Render(), parsed.Render())
}

func TestParseSectionMalformedLine(t *testing.T) {
	_, err := ParseSection([]string{"172.18.0.2"})
	assert.Error(t, err)
}

func TestRenderSection(t *testing.T) {
	assert.Equal(t,
		"# BEGIN DOCKER CONTAINERS\n172.18.0.2 web\n# END DOCKER CONTAINERS\n",
		renderSection([]string{"172.18.0.2 web"}))
	assert.Equal(t,
		"# BEGIN DOCKER CONTAINERS\n# END DOCKER CONTAINERS\n",
		renderSection(nil))
}
