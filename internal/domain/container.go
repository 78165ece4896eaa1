package domain

// NetworkAttachment is one container endpoint on a Docker network.
type NetworkAttachment struct {
	Network string
	IP      string
	Aliases []string
}

// ContainerRecord is a point-in-time snapshot of one running container,
// rebuilt from the runtime on every reconciliation cycle.
type ContainerRecord struct {
	ID       string
	Name     string
	Hostname string
	Networks []NetworkAttachment
}
