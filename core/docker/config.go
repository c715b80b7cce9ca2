package docker

// Config holds configuration for the Docker Engine connection.
type Config struct {
	// Host is the daemon address (unix:///var/run/docker.sock, tcp://host:2375).
	Host string `mapstructure:"host" default:"unix:///var/run/docker.sock"`
	// APIVersion pins the API version prefix (e.g. 1.43). Empty uses the daemon default.
	APIVersion string `mapstructure:"api_version" default:""`
	// TimeoutSeconds is the connection setup timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
