package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	defaultTargetURL = "https://www.xiaohongshu.com/explore"
	defaultBaseURL   = "https://www.xiaohongshu.com"

	// Fixed desktop Chrome user agent presented to the feed.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Config struct {
	TargetURL string
	BaseURL   *url.URL
	UserAgent string
	Headless  bool

	ScrollInterval      time.Duration
	SettleDelay         time.Duration
	LoadingRetryDelay   time.Duration
	StatusCheckInterval time.Duration

	ContentWaitRetries int
	RunDuration        time.Duration
	ExportDir          string
	SelectorsPath      string
	LogLevel           slog.Level
}

func Load() (*Config, error) {
	targetURL := os.Getenv("XHS_TARGET_URL")
	if targetURL == "" {
		targetURL = defaultTargetURL
	}

	baseURLStr := os.Getenv("XHS_BASE_URL")
	if baseURLStr == "" {
		baseURLStr = defaultBaseURL
	}
	baseURL, err := url.Parse(baseURLStr)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid XHS_BASE_URL %q: must be an absolute URL", baseURLStr)
	}

	userAgent := os.Getenv("XHS_USER_AGENT")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	headless := true
	if v := os.Getenv("XHS_HEADLESS"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid XHS_HEADLESS %q: %w", v, err)
		}
		headless = parsed
	}

	scrollInterval, err := durationEnv("XHS_SCROLL_INTERVAL", 3*time.Second)
	if err != nil {
		return nil, err
	}
	settleDelay, err := durationEnv("XHS_SETTLE_DELAY", time.Second)
	if err != nil {
		return nil, err
	}
	loadingRetryDelay, err := durationEnv("XHS_LOADING_RETRY_DELAY", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	statusCheckInterval, err := durationEnv("XHS_STATUS_CHECK_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}
	runDuration, err := durationEnv("XHS_RUN_DURATION", 0)
	if err != nil {
		return nil, err
	}

	contentWaitRetries := 3
	if v := os.Getenv("XHS_CONTENT_WAIT_RETRIES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid XHS_CONTENT_WAIT_RETRIES %q", v)
		}
		contentWaitRetries = parsed
	}

	logLevel := slog.LevelInfo
	if v := os.Getenv("XHS_LOG_LEVEL"); v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid XHS_LOG_LEVEL %q: %w", v, err)
		}
	}

	exportDir := os.Getenv("XHS_EXPORT_DIR")
	if exportDir == "" {
		exportDir = "."
		slog.Info("Defaulting export directory to working directory")
	}

	return &Config{
		TargetURL:           targetURL,
		BaseURL:             baseURL,
		UserAgent:           userAgent,
		Headless:            headless,
		ScrollInterval:      scrollInterval,
		SettleDelay:         settleDelay,
		LoadingRetryDelay:   loadingRetryDelay,
		StatusCheckInterval: statusCheckInterval,
		ContentWaitRetries:  contentWaitRetries,
		RunDuration:         runDuration,
		ExportDir:           exportDir,
		SelectorsPath:       os.Getenv("SELECTORS_CONFIG_PATH"),
		LogLevel:            logLevel,
	}, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", name, v)
	}
	return d, nil
}
