package config

// Config 配置主体
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	Mongo                MongoConfig          `mapstructure:"mongo"`
	Logstash             LogstashConfig       `mapstructure:"logstash"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaSessionConsumer KafkaSessionConsumer `mapstructure:"kafka_session_consumer"`
	Signals              SignalsConfig        `mapstructure:"signals"`
	Reputation           ReputationConfig     `mapstructure:"reputation"`
	Moderation           ModerationConfig     `mapstructure:"moderation"`
	Scheduler            SchedulerConfig      `mapstructure:"scheduler"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig Mongo配置，存放审核流水
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaSessionConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// SignalsConfig 外部信号提供方配置（技术评级/东道主可靠性/参与质量）
type SignalsConfig struct {
	SkillURL         string `mapstructure:"skill_url"`
	ReliabilityURL   string `mapstructure:"reliability_url"`
	ParticipationURL string `mapstructure:"participation_url"`
	TimeoutMillis    int    `mapstructure:"timeout_millis"`
	CacheTTLMinutes  int    `mapstructure:"cache_ttl_minutes"`
}

// ReputationConfig 声誉计算配置
// 平滑常数 C 与先验均值 m 历史上出现过多组取值，统一走配置，不在代码里写死
type ReputationConfig struct {
	GameConfidence  float64      `mapstructure:"game_confidence"`
	GamePrior       float64      `mapstructure:"game_prior"`
	UserConfidence  float64      `mapstructure:"user_confidence"`
	UserPrior       float64      `mapstructure:"user_prior"`
	Weights         WeightConfig `mapstructure:"weights"`
	CacheTTLMinutes int          `mapstructure:"cache_ttl_minutes"`
}

// WeightConfig 综合声誉各信号权重，四项之和必须为 1
type WeightConfig struct {
	Review        float64 `mapstructure:"review"`
	Skill         float64 `mapstructure:"skill"`
	Reliability   float64 `mapstructure:"reliability"`
	Participation float64 `mapstructure:"participation"`
}

// ModerationConfig 审核配置
type ModerationConfig struct {
	FlagThreshold int `mapstructure:"flag_threshold"`
}

// SchedulerConfig 重算调度器配置
type SchedulerConfig struct {
	Workers          int    `mapstructure:"workers"`
	QueueSize        int    `mapstructure:"queue_size"`
	RecomputeTimeout int    `mapstructure:"recompute_timeout"` // 秒
	SweepCron        string `mapstructure:"sweep_cron"`
}
