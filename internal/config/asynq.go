package config

// Asynq drives the scheduled snapshot refresh. Disabled by default; a manual
// refresh over HTTP is always available.
type Asynq struct {
	Enabled         bool   `env:"ASYNQ_ENABLED" envDefault:"false"`
	RefreshCronspec string `env:"ASYNQ_REFRESH_CRONSPEC" envDefault:"@every 6h"`
}
