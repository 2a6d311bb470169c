package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Redis     RedisConfigs
	Fotd      FotdConfigs
	Eth       EthConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// LogLevel is the gorm log level: silent, error, warn, info.
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type RedisConfigs struct {
	Addr string
}

// FotdConfigs drives the Frog-of-the-Day period lifecycle.
type FotdConfigs struct {
	// PeriodDuration is the length of one contest period.
	PeriodDuration time.Duration

	// TickInterval is how often the internal cron job invokes the lifecycle
	// tick. External schedulers hitting the trigger endpoint may use any
	// cadence; overlapping invocations are safe.
	TickInterval time.Duration

	// PayoutPercent is the integer percentage of the treasury balance paid to
	// the period winner, in range (0, 100].
	PayoutPercent int64

	// SettlementTimeout bounds a single payout attempt against the chain.
	SettlementTimeout time.Duration

	// TickLeaseTTL is the redis lease duration serializing ticks across
	// replicas. Must exceed SettlementTimeout.
	TickLeaseTTL time.Duration

	// StandingCacheTTL is how long the current-standing response may be served
	// from cache. Zero disables caching.
	StandingCacheTTL time.Duration

	// CronSecret authorizes the scheduler trigger and bootstrap endpoints.
	CronSecret string
}

type EthConfigs struct {
	Chain ChainConfig `toml:"chain"`

	// Treasury holds the prize pool. TreasuryPrivateKey is the hex-encoded key
	// signing payout transfers.
	TreasuryAddress    string `toml:"treasury_address"`
	TreasuryPrivateKey string `toml:"treasury_private_key"`

	// TokenAddress is the ERC-20 contract of the prize token. Empty means the
	// chain's native currency.
	TokenAddress string `toml:"token_address"`
}

type ChainConfig struct {
	Chain string   `toml:"chain" json:"chain"`
	ID    int64    `toml:"id" json:"id"`
	Rpcs  []string `toml:"rpcs" json:"rpcs"`

	// For gas calculation.
	UseEip1559 bool `toml:"use_eip_1559" json:"use_eip_1559"`
}
