package config

// BackendConfig controls how we talk to the schedule backend API.
type BackendConfig struct {
	BaseURL       string
	Token         string
	Timeout       Duration
	MinInterval   Duration
	RetryAttempts int
	RetryBase     Duration
}

func loadBackend() BackendConfig {
	return BackendConfig{
		BaseURL:       envOrDefault(envBackendURL, defaultBackendURL),
		Token:         envOrDefault(envBackendToken, ""),
		Timeout:       durationEnvOrDefault(envBackendTO, defaultBackendTO),
		MinInterval:   durationEnvOrDefault(envBackendRate, defaultBackendRate),
		RetryAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryBase:     durationEnvOrDefault(envRetryBase, defaultRetryBase),
	}
}
