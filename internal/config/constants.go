package config

import "time"

const (
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envProvider      = "PROVIDER"
	envSeasons       = "SEASONS"
	envLeaguesFile   = "LEAGUES_FILE"
	envStoreBackend  = "STORE_BACKEND"
	envStoreDSN      = "STORE_DSN"
	envBackendURL    = "BACKEND_BASE_URL"
	envBackendToken  = "BACKEND_TOKEN"
	envBackendTO     = "BACKEND_TIMEOUT"
	envBackendRate   = "BACKEND_MIN_INTERVAL"
	envRetryAttempts = "PROVIDER_RETRY_ATTEMPTS"
	envRetryBase     = "PROVIDER_RETRY_BASE"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envCORSOrigins   = "CORS_ALLOWED_ORIGINS"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"
	envSnapshotsOn   = "SNAPSHOTS_ENABLED"
	envSnapshotDir   = "SNAPSHOT_DIR"
	envSnapshotDays  = "SNAPSHOT_RETENTION_DAYS"

	defaultPort          = "4000"
	defaultPollInterval  = 5 * Duration(time.Minute)
	defaultProvider      = "fixture"
	defaultSeasons       = "1:nfl,2:nba"
	defaultStoreBackend  = "memory"
	defaultStoreDSN      = "file:data/season-weeks.db"
	defaultBackendURL    = "http://localhost:8080/api"
	defaultBackendTO     = 10 * Duration(time.Second)
	defaultBackendRate   = Duration(time.Second)
	defaultRetryAttempts = 3
	defaultRetryBase     = 500 * Duration(time.Millisecond)
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultMetricsPort   = "9090"
	defaultSnapshotsOn   = true
	defaultSnapshotDir   = "data/snapshots"
	defaultSnapshotDays  = 14
)
