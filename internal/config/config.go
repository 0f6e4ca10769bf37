package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/platform/dburl"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/riskibarqy/match-analyzer/internal/platform/resilience"
)

const (
	DBURLMemory = dburl.Memory

	defaultNewsFeeds = "ESPN|https://www.espn.com/espn/rss/soccer/news," +
		"BBC Sport|https://feeds.bbci.co.uk/sport/football/rss.xml," +
		"Goal.com|https://www.goal.com/feeds/en/news"
	defaultNewsUserAgent = "Mozilla/5.0 (compatible; MatchAnalyzer/1.0)"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	DBURL                   string
	DBDisablePreparedBinary bool
	DBSeedEnabled           bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CacheMaxEntries         int

	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	PprofEnabled       bool
	PprofAddr          string

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	News    NewsConfig
	TextGen TextGenConfig

	AnalysisWorkers        int
	AnalysisRecentH2H      int
	PredictionDrawBaseline float64
	PredictionAwayDampener float64
}

type NewsFeed struct {
	Name string
	URL  string
}

type NewsConfig struct {
	Enabled         bool
	Feeds           []NewsFeed
	Timeout         time.Duration
	MaxItemsPerFeed int
	UserAgent       string
	Circuit         resilience.CircuitBreakerConfig
}

type TextGenConfig struct {
	Enabled    bool
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Circuit    resilience.CircuitBreakerConfig
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            strings.TrimSpace(getEnv("APP_SERVICE_NAME", "match-analyzer-api")),
		ServiceVersion:         strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:               strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"), logging.LevelInfo),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", DBURLMemory)),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	p := parser{}
	cfg.ReadTimeout = p.positiveDuration("APP_READ_TIMEOUT", "10s")
	cfg.WriteTimeout = p.positiveDuration("APP_WRITE_TIMEOUT", "30s")
	cfg.SwaggerEnabled = p.boolean("SWAGGER_ENABLED", swaggerDefault)
	cfg.PprofEnabled = p.boolean("PPROF_ENABLED", "false")

	cfg.DBDisablePreparedBinary = p.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", "true")
	cfg.DBSeedEnabled = p.boolean("DB_SEED_ENABLED", "false")
	cfg.CacheEnabled = p.boolean("CACHE_ENABLED", "true")
	cfg.CacheTTL = p.positiveDuration("CACHE_TTL", "60s")
	cfg.CacheMaxEntries = p.intAtLeast("CACHE_MAX_ENTRIES", 1024, 0)

	cfg.UptraceEnabled = p.boolean("UPTRACE_ENABLED", "false")
	cfg.UptraceLogsEnabled = p.boolean("UPTRACE_LOGS_ENABLED", "true")
	cfg.UptraceCaptureRequestBody = p.boolean("UPTRACE_CAPTURE_REQUEST_BODY", "true")
	cfg.UptraceRequestBodyMaxBytes = p.intAtLeast("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192, 1)
	cfg.PyroscopeEnabled = p.boolean("PYROSCOPE_ENABLED", "false")
	cfg.PyroscopeUploadRate = p.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")

	cfg.News = NewsConfig{
		Enabled:         p.boolean("NEWS_ENABLED", "true"),
		Timeout:         p.positiveDuration("NEWS_TIMEOUT", "10s"),
		MaxItemsPerFeed: p.intAtLeast("NEWS_MAX_ITEMS_PER_FEED", 10, 1),
		UserAgent:       strings.TrimSpace(getEnv("NEWS_USER_AGENT", defaultNewsUserAgent)),
		Circuit:         p.circuit("NEWS"),
	}
	cfg.TextGen = TextGenConfig{
		Enabled:    p.boolean("TEXTGEN_ENABLED", "false"),
		BaseURL:    strings.TrimSpace(getEnv("TEXTGEN_BASE_URL", "https://ai.gateway.lovable.dev/v1")),
		APIKey:     strings.TrimSpace(getEnv("TEXTGEN_API_KEY", "")),
		Model:      strings.TrimSpace(getEnv("TEXTGEN_MODEL", "google/gemini-2.5-flash")),
		Timeout:    p.positiveDuration("TEXTGEN_TIMEOUT", "60s"),
		MaxRetries: p.intAtLeast("TEXTGEN_MAX_RETRIES", 1, 0),
		Circuit:    p.circuit("TEXTGEN"),
	}

	cfg.AnalysisWorkers = p.intAtLeast("ANALYSIS_WORKERS", 4, 1)
	cfg.AnalysisRecentH2H = p.intAtLeast("ANALYSIS_RECENT_H2H", 6, 1)
	cfg.PredictionDrawBaseline = p.floatBetween("PREDICTION_DRAW_BASELINE", 18, 0, 100)
	cfg.PredictionAwayDampener = p.floatBetween("PREDICTION_AWAY_DAMPENER", 0.85, 0.01, 1)
	if p.err != nil {
		return Config{}, p.err
	}

	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	cfg.News.Feeds, err = parseFeeds(getEnv("NEWS_FEEDS", defaultNewsFeeds))
	if err != nil {
		return Config{}, fmt.Errorf("parse NEWS_FEEDS: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.HTTPAddr == "":
		return fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	case c.DBURL == "":
		return fmt.Errorf("DB_URL cannot be empty")
	case len(c.CORSAllowedOrigins) == 0:
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	case c.UptraceEnabled && c.UptraceDSN == "":
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	case c.PprofEnabled && c.PprofAddr == "":
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	case c.PyroscopeEnabled && c.PyroscopeServerAddress == "":
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	case c.PyroscopeEnabled && c.PyroscopeAppName == "":
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	case c.News.Enabled && len(c.News.Feeds) == 0:
		return fmt.Errorf("NEWS_FEEDS is required when NEWS_ENABLED=true")
	case c.TextGen.Enabled && c.TextGen.APIKey == "":
		return fmt.Errorf("TEXTGEN_API_KEY is required when TEXTGEN_ENABLED=true")
	case c.TextGen.Enabled && c.TextGen.BaseURL == "":
		return fmt.Errorf("TEXTGEN_BASE_URL is required when TEXTGEN_ENABLED=true")
	case c.TextGen.Enabled && c.TextGen.Model == "":
		return fmt.Errorf("TEXTGEN_MODEL is required when TEXTGEN_ENABLED=true")
	}
	return nil
}

// parser records the first parse failure so Load can read every variable
// in sequence and check once.
type parser struct {
	err error
}

func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

func (p *parser) boolean(key, fallback string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		p.fail("parse %s: %w", key, err)
		return false
	}
	return v
}

func (p *parser) positiveDuration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		p.fail("parse %s: %w", key, err)
		return 0
	}
	if v <= 0 {
		p.fail("%s must be > 0", key)
	}
	return v
}

func (p *parser) intAtLeast(key string, fallback, minimum int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		p.fail("parse %s: %w", key, err)
		return 0
	}
	if v < minimum {
		p.fail("%s must be >= %d", key, minimum)
	}
	return v
}

func (p *parser) floatBetween(key string, fallback, lo, hi float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail("parse %s: %w", key, err)
		return 0
	}
	if v < lo || v > hi {
		p.fail("%s must be between %g and %g", key, lo, hi)
	}
	return v
}

// circuit reads <PREFIX>_CIRCUIT_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and
// _HALF_OPEN_MAX_REQ.
func (p *parser) circuit(prefix string) resilience.CircuitBreakerConfig {
	defaults := resilience.DefaultCircuitBreakerConfig()
	return resilience.CircuitBreakerConfig{
		Enabled:          p.boolean(prefix+"_CIRCUIT_ENABLED", strconv.FormatBool(defaults.Enabled)),
		FailureThreshold: p.intAtLeast(prefix+"_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold, 1),
		OpenTimeout:      p.positiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String()),
		HalfOpenMaxReq:   p.intAtLeast(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq, 1),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseFeeds reads "name|url" items. A bare URL is named after its host.
func parseFeeds(raw string) ([]NewsFeed, error) {
	out := make([]NewsFeed, 0, 3)
	for _, item := range splitCSV(raw) {
		name, url, found := strings.Cut(item, "|")
		if !found {
			name, url = "", item
		}
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return nil, fmt.Errorf("invalid feed url in item %q", item)
		}
		if name == "" {
			name = feedHost(url)
		}
		out = append(out, NewsFeed{Name: name, URL: url})
	}
	return out, nil
}

func feedHost(url string) string {
	rest := url[strings.Index(url, "://")+3:]
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
