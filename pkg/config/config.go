package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	LogMode string

	// Dataset
	DataPath         string
	SourcesFile      string
	ManualInputsFile string

	// Store backend: file | mongo | postgres | supabase | sqlite | redis
	StoreBackend    string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	PostgresDSN     string
	SupabaseURL     string
	SupabaseKey     string
	SupabasePass    string
	SupabaseTable   string
	SQLitePath      string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKey        string

	// Extraction: openai | gemini
	AIProvider    string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string

	// Run limits
	RunTimeout         time.Duration
	AdapterTimeout     time.Duration
	ExtractTimeout     time.Duration
	AdapterConcurrency int
	ExtractWorkers     int

	// Publishing
	SFTPHost       string
	SFTPPort       int
	SFTPUser       string
	SFTPPass       string
	SFTPRemoteDir  string
	SFTPKnownHosts string
	SFTPFileName   string
}

func Load() Config {
	return Config{
		LogMode: getenv("LOG_MODE", "dev"),

		DataPath:         getenv("DATA_PATH", "data/hackathons.json"),
		SourcesFile:      os.Getenv("SOURCES_FILE"),
		ManualInputsFile: os.Getenv("MANUAL_INPUTS_FILE"),

		StoreBackend:    getenv("STORE_BACKEND", "file"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "hackathon_radar"),
		MongoCollection: getenv("MONGO_COLLECTION", "hackathons"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     os.Getenv("SUPABASE_KEY"),
		SupabasePass:    os.Getenv("SUPABASE_PASSWORD"),
		SupabaseTable:   getenv("SUPABASE_TABLE", "hackathons"),
		SQLitePath:      getenv("SQLITE_PATH", "data/hackathons.db"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getenvInt("REDIS_DB", 0),
		RedisKey:        getenv("REDIS_KEY", "hackathons"),

		AIProvider:    getenv("AI_PROVIDER", "openai"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.0-flash"),

		RunTimeout:         getenvDuration("RUN_TIMEOUT", 10*time.Minute),
		AdapterTimeout:     getenvDuration("ADAPTER_TIMEOUT", 90*time.Second),
		ExtractTimeout:     getenvDuration("EXTRACT_TIMEOUT", 45*time.Second),
		AdapterConcurrency: getenvInt("ADAPTER_CONCURRENCY", 4),
		ExtractWorkers:     getenvInt("EXTRACT_WORKERS", 3),

		SFTPHost:       os.Getenv("SFTP_HOST"),
		SFTPPort:       getenvInt("SFTP_PORT", 22),
		SFTPUser:       os.Getenv("SFTP_USER"),
		SFTPPass:       os.Getenv("SFTP_PASS"),
		SFTPRemoteDir:  getenv("SFTP_REMOTE_DIR", "/"),
		SFTPKnownHosts: os.Getenv("SFTP_KNOWN_HOSTS"),
		SFTPFileName:   getenv("SFTP_FILE_NAME", "hackathons.json"),
	}
}

// SFTPEnabled reports whether enough SFTP settings are present to publish.
func (c Config) SFTPEnabled() bool {
	return c.SFTPHost != "" && c.SFTPUser != "" && c.SFTPPass != ""
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
