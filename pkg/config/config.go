package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	Shop    Shop
	Mail    Mail
	Catalog Catalog
	HTTP    HTTP
	Client  Client
}

// Shop is the storefront identity used in notification mails.
type Shop struct {
	Name       string
	Currency   string
	OrderEmail string
}

type Mail struct {
	Driver string // smtp, sendgrid or log
	From   string

	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool
	SMTPUser   string
	SMTPPass   string

	SendGridAPIKey string
}

type Catalog struct {
	Source      string // dir or s3
	Dir         string
	Concurrency int

	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

type HTTP struct {
	PublicDir          string
	CORSOrigins        []string
	TrustedProxies     []string
	OrderRatePerMinute float64
	OrderRateBurst     int
	MaxBodyBytes       int64
}

// Client holds settings for the terminal cart client.
type Client struct {
	ShopURL   string
	CartStore string // file or sqlite
	CartPath  string
}

func Load() Config {
	smtpUser := getEnv("SMTP_USER", "")

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", getEnvInt("PORT", 3000)),
		GRPCPort: getEnvInt("GRPC_PORT", 3001),
		Shop: Shop{
			Name:       getEnv("SHOP_NAME", "Simple Shop"),
			Currency:   getEnv("SHOP_CURRENCY", "EUR"),
			OrderEmail: getEnv("ORDER_EMAIL", ""),
		},
		Mail: Mail{
			Driver:         strings.ToLower(getEnv("MAIL_DRIVER", "smtp")),
			From:           getEnv("MAIL_FROM", smtpUser),
			SMTPHost:       getEnv("SMTP_HOST", "localhost"),
			SMTPPort:       getEnvInt("SMTP_PORT", 587),
			SMTPSecure:     getEnvBool("SMTP_SECURE", false),
			SMTPUser:       smtpUser,
			SMTPPass:       getEnv("SMTP_PASS", ""),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		},
		Catalog: Catalog{
			Source:          strings.ToLower(getEnv("CATALOG_SOURCE", "dir")),
			Dir:             getEnv("CATALOG_DIR", "products"),
			Concurrency:     getEnvInt("CATALOG_CONCURRENCY", 8),
			S3Bucket:        getEnv("S3_BUCKET", ""),
			S3Prefix:        getEnv("S3_PREFIX", ""),
			S3PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		},
		HTTP: HTTP{
			PublicDir:          getEnv("PUBLIC_DIR", "public"),
			CORSOrigins:        getEnvList("CORS_ORIGINS"),
			TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
			OrderRatePerMinute: getEnvFloat("ORDER_RATE_PER_MINUTE", 10),
			OrderRateBurst:     getEnvInt("ORDER_RATE_BURST", 5),
			MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 100<<10)),
		},
		Client: Client{
			ShopURL:   strings.TrimRight(getEnv("SHOP_URL", "http://localhost:3000"), "/"),
			CartStore: strings.ToLower(getEnv("CART_STORE", "file")),
			CartPath:  getEnv("CART_PATH", ".shopcli"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
