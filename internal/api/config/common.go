package config

import "time"

// Config 配置主体
type Config struct {
	Server             ServerConfig       `mapstructure:"server"`
	Mongo              MongoConfig        `mapstructure:"mongo"`
	Redis              RedisConfig        `mapstructure:"redis"`
	Kafka              KafkaConfig        `mapstructure:"kafka"`
	KafkaShareConsumer KafkaShareConsumer `mapstructure:"kafka_share_consumer"`
	Community          CommunityConfig    `mapstructure:"community"`
	RateLimit          RateLimitConfig    `mapstructure:"rate_limit"`
	Leaderboard        LeaderboardConfig  `mapstructure:"leaderboard"`
	Auth               AuthConfig         `mapstructure:"auth"`
	Admin              AdminConfig        `mapstructure:"admin"`
	Logstash           LogstashConfig     `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
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

// KafkaShareConsumer 投稿事件消费者（终审触发器）
type KafkaShareConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// CommunityConfig 社区审核策略
type CommunityConfig struct {
	// Quorum 达到多少票后才进行终审判定
	Quorum int `mapstructure:"quorum"`
	// ApprovalRatio 通过所需的赞成票比例
	ApprovalRatio float64 `mapstructure:"approval_ratio"`
}

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Window   time.Duration `mapstructure:"window"`
	MaxCount int           `mapstructure:"max_count"`
}

type RateLimitConfig struct {
	Vote  RateLimitRule `mapstructure:"vote"`
	Share RateLimitRule `mapstructure:"share"`
}

// LeaderboardConfig 榜单物化配置
type LeaderboardConfig struct {
	RebuildSpec string        `mapstructure:"rebuild_spec"`
	TopN        int           `mapstructure:"top_n"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// AdminConfig 管理端共享密钥（bcrypt 哈希）
type AdminConfig struct {
	SecretHash string `mapstructure:"secret_hash"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
