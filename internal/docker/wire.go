package docker

import (
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
)

func fromInspectResponse(inspect container.InspectResponse) domain.ContainerRecord {
	var record domain.ContainerRecord
	if inspect.ContainerJSONBase != nil {
		record.ID = inspect.ID
		record.Name = strings.TrimPrefix(inspect.Name, "/")
	}
	if inspect.Config != nil {
		record.Hostname = inspect.Config.Hostname
	}
	if inspect.NetworkSettings == nil {
		return record
	}

	// The API reports networks as a map; sort the names so attachment order
	// is stable from cycle to cycle.
	networkNames := make([]string, 0, len(inspect.NetworkSettings.Networks))
	for name := range inspect.NetworkSettings.Networks {
		networkNames = append(networkNames, name)
	}
	sort.Strings(networkNames)

	for _, name := range networkNames {
		endpoint := inspect.NetworkSettings.Networks[name]
		if endpoint == nil {
			continue
		}
		record.Networks = append(record.Networks, domain.NetworkAttachment{
			Network: name,
			IP:      endpoint.IPAddress,
			Aliases: endpoint.Aliases,
		})
	}
	return record
}

func fromEventsMessage(msg events.Message) (domain.ContainerEvent, bool) {
	evt := domain.ContainerEvent{
		Occurred: time.Unix(0, msg.TimeNano),
	}
	switch msg.Type {
	case events.ContainerEventType:
		evt.ContainerID = msg.Actor.ID
		evt.ContainerName = msg.Actor.Attributes["name"]
		evt.Type = domain.EventType(msg.Action)
	case events.NetworkEventType:
		// For network events the "name" attribute is the network, not the
		// container; only the container id is carried over.
		evt.ContainerID = msg.Actor.Attributes["container"]
		evt.Type = domain.EventType("network-" + string(msg.Action))
	default:
		return domain.ContainerEvent{}, false
	}
	if !evt.Type.IsValid() {
		return domain.ContainerEvent{}, false
	}
	return evt, true
}
