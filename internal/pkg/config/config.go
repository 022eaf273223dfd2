// internal/pkg/config/config.go
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config 汇总了 order-service 的全部可调参数。
// 加载顺序：默认值 -> YAML 文件 -> 环境变量，后者覆盖前者。
type Config struct {
	App struct {
		ServiceName     string `yaml:"service_name"`
		Port            int    `yaml:"port"`
		PaymentAttempts int    `yaml:"payment_attempts"`
		// FraudRule 是一条 CEL 表达式，对订单事实求值，true 表示放行。
		FraudRule string `yaml:"fraud_rule"`
	} `yaml:"app"`

	Infra struct {
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		Kafka struct {
			Brokers string `yaml:"brokers"`
			Topic   string `yaml:"topic"`
		} `yaml:"kafka"`
		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`
		MySQL struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
	} `yaml:"infra"`
}

// Default 返回本地开发用的缺省配置。
func Default() *Config {
	cfg := &Config{}
	cfg.App.ServiceName = "order-service"
	cfg.App.Port = 8080
	cfg.App.PaymentAttempts = 3
	cfg.App.FraudRule = `total < 100000.0 && quantity <= 1000`
	return cfg
}

// Load 加载配置。path 为空时只使用默认值和环境变量。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", path)
		}
	}

	// 环境变量兜底，保持与旧部署脚本兼容
	cfg.App.ServiceName = getEnv("SERVICE_NAME", cfg.App.ServiceName)
	cfg.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", cfg.Infra.Jaeger.Endpoint)
	cfg.Infra.Kafka.Brokers = getEnv("KAFKA_BROKERS", cfg.Infra.Kafka.Brokers)
	cfg.Infra.Redis.Addr = getEnv("REDIS_ADDR", cfg.Infra.Redis.Addr)
	cfg.Infra.MySQL.DSN = getEnv("MYSQL_DSN", cfg.Infra.MySQL.DSN)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
