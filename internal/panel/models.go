package panel

type PowerSignal string

const (
	SignalStart   PowerSignal = "start"
	SignalStop    PowerSignal = "stop"
	SignalRestart PowerSignal = "restart"
	SignalKill    PowerSignal = "kill"
)

type Limits struct {
	Memory int `json:"memory"`
	Swap   int `json:"swap"`
	Disk   int `json:"disk"`
	IO     int `json:"io"`
	CPU    int `json:"cpu"`
}

type FeatureLimits struct {
	Databases   int `json:"databases"`
	Allocations int `json:"allocations"`
	Backups     int `json:"backups"`
}

type Deploy struct {
	Locations   []int    `json:"locations"`
	DedicatedIP bool     `json:"dedicated_ip"`
	PortRange   []string `json:"port_range"`
}

type CreateServerRequest struct {
	ExternalID        string            `json:"external_id,omitempty"`
	Name              string            `json:"name"`
	User              int               `json:"user"`
	Egg               int               `json:"egg"`
	DockerImage       string            `json:"docker_image"`
	Startup           string            `json:"startup"`
	Environment       map[string]string `json:"environment"`
	Limits            Limits            `json:"limits"`
	FeatureLimits     FeatureLimits     `json:"feature_limits"`
	Deploy            Deploy            `json:"deploy"`
	StartOnCompletion bool              `json:"start_on_completion"`
}

type User struct {
	ID         int    `json:"id"`
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

type Server struct {
	ID           int    `json:"id"`
	Identifier   string `json:"identifier"`
	Name         string `json:"name"`
	Suspended    bool   `json:"suspended"`
	IsSuspended  bool   `json:"is_suspended"`
	IsInstalling bool   `json:"is_installing"`
	Limits       Limits `json:"limits"`
}

// envelope is the panel's {"object": ..., "attributes": ...} wrapper.
type envelope[T any] struct {
	Object     string `json:"object"`
	Attributes T      `json:"attributes"`
}

type powerRequest struct {
	Signal PowerSignal `json:"signal"`
}
