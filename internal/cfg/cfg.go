package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	App   *AppCfg
	Log   *LogCfg
	Http  *HTTPConfig
	Grpc  *GRPCConfig
	Redis *RedisCfg // nil, если REDIS_ADDR не задан
	Kafka *KafkaCfg // nil, если KAFKA_BROKERS не задан
}

type AppCfg struct {
	OrdersFile      string        // Путь к JSON-файлу с заказами
	CatalogPath     string        // Путь к каталогу (json/yaml), пустой — встроенный каталог
	DefaultCurrency string        // Валюта заказа, если у товаров она не указана
	LockTimeout     time.Duration // Сколько ждать файловую блокировку хранилища
}

type LogCfg struct {
	Level  string
	Format string
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	SearchTTL   time.Duration // Время жизни закэшированной выдачи поиска
	KeyPrefix   string
}

type KafkaCfg struct {
	Topic        string
	Brokers      []string
	MaxAttempts  int
	WriteTimeout time.Duration
}

// LoadDotEnv подгружает переменные окружения из .env файла.
// Отсутствие файла ошибкой не считается, уже заданные переменные не перезаписываются.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	app, err := loadAppCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		App:   app,
		Log:   loadLogCfg(),
		Http:  http,
		Grpc:  loadGRPCConfig(),
		Redis: redis,
		Kafka: kafka,
	}, nil
}

func loadAppCfg(log logger.Logger) (*AppCfg, error) {
	const (
		defaultOrdersFile  = "orders.json"
		defaultCurrency    = "INR"
		defaultLockTimeout = 5 * time.Second
	)

	lockTimeout, err := parseDurationEnv("ORDERS_LOCK_TIMEOUT", defaultLockTimeout)
	if err != nil {
		log.Errorf(err, "invalid ORDERS_LOCK_TIMEOUT")
		return nil, err
	}

	ordersFile := strings.TrimSpace(getEnvOrDefault("ORDERS_FILE", defaultOrdersFile))
	if ordersFile == "" {
		return nil, fmt.Errorf("ORDERS_FILE must not be blank")
	}

	return &AppCfg{
		OrdersFile:      ordersFile,
		CatalogPath:     getEnv("CATALOG_PATH"),
		DefaultCurrency: strings.ToUpper(getEnvOrDefault("DEFAULT_CURRENCY", defaultCurrency)),
		LockTimeout:     lockTimeout,
	}, nil
}

func loadLogCfg() *LogCfg {
	const (
		defaultLevel  = "info"
		defaultFormat = "console"
	)

	return &LogCfg{
		Level:  getEnvOrDefault("LOG_LEVEL", defaultLevel),
		Format: getEnvOrDefault("LOG_FORMAT", defaultFormat),
	}
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultSearchTTL    = 3 * time.Minute
		defaultKeyPrefix    = "merchant:"
	)

	addr := getEnv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	searchTTL, err := parseDurationEnv("SEARCH_CACHE_TTL", defaultSearchTTL)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_CACHE_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		SearchTTL:   searchTTL,
		KeyPrefix:   getEnvOrDefault("REDIS_KEY_PREFIX", defaultKeyPrefix),
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic        = "orders.placed"
		defaultMaxAttempts  = 3
		defaultWriteTimeout = 10 * time.Second
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	var brokers []string
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, e.Wrap("KAFKA_BROKERS", e.ErrIncorrectEnvVariable)
	}

	maxAttempts, err := parseIntEnv("KAFKA_MAX_ATTEMPTS", defaultMaxAttempts)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_ATTEMPTS", err)
	}

	writeTimeout, err := parseDurationEnv("KAFKA_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		return nil, e.Wrap("KAFKA_WRITE_TIMEOUT", err)
	}

	return &KafkaCfg{
		Brokers:      brokers,
		Topic:        getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		MaxAttempts:  maxAttempts,
		WriteTimeout: writeTimeout,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
