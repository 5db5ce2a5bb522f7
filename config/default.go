package config

func GetDefault() Config {
	return Config{
		Branches: []string{"main", "master"},
		Upstream: "origin",
	}
}
