package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Game     GameConfig     `mapstructure:"game"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
	// AdminKeyHash is a bcrypt hash of the X-Admin-Key value. Empty disables
	// the admin endpoints.
	AdminKeyHash string   `mapstructure:"admin_key_hash"`
	AdminIPs     []string `mapstructure:"admin_ips"`
	StaticDir    string   `mapstructure:"static_dir"` // browser client, served at /
}

type DatabaseConfig struct {
	Mode         string        `mapstructure:"mode"` // sqlite | mysql
	SQLitePath   string        `mapstructure:"sqlite_path"`
	MySQLDSN     string        `mapstructure:"mysql_dsn"`
	MySQLMaxOpen int           `mapstructure:"mysql_max_open"`
	MySQLMaxIdle int           `mapstructure:"mysql_max_idle"`
	MySQLMaxLife time.Duration `mapstructure:"mysql_max_life"`
}

type CacheConfig struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	LocalGCInterval time.Duration `mapstructure:"local_gc_interval"`
	LocalPubSubBuf  int           `mapstructure:"local_pubsub_buf"`
}

type GameConfig struct {
	TickInterval       time.Duration `mapstructure:"tick_interval"`
	ManaRegen          float64       `mapstructure:"mana_regen"`
	StaminaRegen       float64       `mapstructure:"stamina_regen"`
	HealthRegen        float64       `mapstructure:"health_regen"`
	ExplorationXP      int           `mapstructure:"exploration_xp"`
	SkillRadius        float64       `mapstructure:"skill_radius"`
	AuraDuration       time.Duration `mapstructure:"aura_duration"`
	CounterattackDelay time.Duration `mapstructure:"counterattack_delay"`
	RespawnDelay       time.Duration `mapstructure:"respawn_delay"`
	InitialEnemies     int           `mapstructure:"initial_enemies"`
	RespawnCheck       time.Duration `mapstructure:"respawn_check"`
	Seed               uint64        `mapstructure:"seed"` // 0 = random
}

type SecurityConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	JWTTTLH        time.Duration `mapstructure:"jwt_ttl_h"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// Load reads config from the given YAML file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return decode(v)
}

// Default returns the configuration with every default applied and no file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, _ := decode(v)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.admin_ips", []string{"127.0.0.1", "::1"})
	v.SetDefault("database.mode", "sqlite")
	v.SetDefault("database.sqlite_path", "./data/adventure.db")
	v.SetDefault("database.mysql_max_open", 50)
	v.SetDefault("database.mysql_max_idle", 10)
	v.SetDefault("database.mysql_max_life", "1h")
	v.SetDefault("cache.local_gc_interval", "30s")
	v.SetDefault("cache.local_pubsub_buf", 256)
	v.SetDefault("game.tick_interval", "1s")
	v.SetDefault("game.mana_regen", 2)
	v.SetDefault("game.stamina_regen", 5)
	v.SetDefault("game.health_regen", 0)
	v.SetDefault("game.exploration_xp", 1)
	v.SetDefault("game.skill_radius", 10)
	v.SetDefault("game.aura_duration", "1s")
	v.SetDefault("game.counterattack_delay", "1s")
	v.SetDefault("game.respawn_delay", "2s")
	v.SetDefault("game.initial_enemies", 10)
	v.SetDefault("game.respawn_check", "10s")
	v.SetDefault("security.jwt_ttl_h", "72h")
	v.SetDefault("security.rate_limit_rps", 100)
	v.SetDefault("security.rate_limit_burst", 200)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
