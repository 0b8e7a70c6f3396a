// Package config holds the storefront configuration.
//
// A single *Config is built once at process start by Load and passed to every
// component that needs it. Nothing reads the environment after that.
//
//	cfg, err := config.Load(config.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	db, err := database.Connect(cfg.Database, logger.L)
package config

import "time"

// Config is the root configuration object.
type Config struct {
	App        App        `envPrefix:"APP_"`
	HTTP       HTTP       `envPrefix:"HTTP_"`
	Database   Database   `envPrefix:"DB_"`
	Redis      Redis      `envPrefix:"REDIS_"`
	JWT        JWT        `envPrefix:"JWT_"`
	Mail       Mail       `envPrefix:"MAIL_"`
	Notify     Notify     `envPrefix:"NOTIFY_"`
	RajaOngkir RajaOngkir `envPrefix:"RAJAONGKIR_"`
	Midtrans   Midtrans   `envPrefix:"MIDTRANS_"`
	Queue      Queue      `envPrefix:"QUEUE_"`
	Log        Log        `envPrefix:"LOG_"`
	Storage    Storage    `envPrefix:"STORAGE_"`
}

type App struct {
	Name            string        `env:"NAME"             envDefault:"storefront"`
	Env             string        `env:"ENV"              envDefault:"local"`
	Port            string        `env:"PORT"             envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// IsProduction reports whether the app runs with production defaults
// (JSON logs, no debug output).
func (a App) IsProduction() bool {
	return a.Env == "production" || a.Env == "prod"
}

type HTTP struct {
	RateLimit    int      `env:"RATE_LIMIT"     envDefault:"200"` // requests per minute per IP
	CORSOrigins  []string `env:"CORS_ORIGINS"   envDefault:"*"   envSeparator:","`
	MaxBodyBytes int64    `env:"MAX_BODY_BYTES" envDefault:"4194304"`
	// TrustedProxies lists IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty means the connection address is always the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DSN"`
}

type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Enabled reports whether a Redis address was configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

type JWT struct {
	Secret string        `env:"SECRET,required,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

type Mail struct {
	Host     string `env:"HOST"      envDefault:"localhost"`
	Port     int    `env:"PORT"      envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"      envDefault:"no-reply@storefront.local"`
	FromName string `env:"FROM_NAME" envDefault:"Storefront"`
	// TLS is one of "starttls", "ssl" or "none".
	TLS string `env:"TLS" envDefault:"starttls"`
}

type Notify struct {
	SlackWebhook string `env:"SLACK_WEBHOOK"`
}

type RajaOngkir struct {
	APIKey   string        `env:"API_KEY"`
	BaseURL  string        `env:"BASE_URL"  envDefault:"https://api.rajaongkir.com/starter"`
	Origin   string        `env:"ORIGIN"    envDefault:"358"`
	Courier  string        `env:"COURIER"   envDefault:"jne"`
	Weight   int           `env:"WEIGHT"    envDefault:"1000"`
	Timeout  time.Duration `env:"TIMEOUT"   envDefault:"30s"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

type Midtrans struct {
	ServerKey  string        `env:"SERVER_KEY"`
	Production bool          `env:"PRODUCTION" envDefault:"false"`
	Timeout    time.Duration `env:"TIMEOUT"    envDefault:"30s"`
}

type Queue struct {
	Driver  string `env:"DRIVER"  envDefault:"memory"` // memory | redis
	Workers int    `env:"WORKERS" envDefault:"2"`
	Key     string `env:"KEY"     envDefault:"storefront:queue:jobs"`
	Buffer  int    `env:"BUFFER"  envDefault:"1000"`
}

type Log struct {
	Level           string `env:"LEVEL"            envDefault:"debug"`
	Format          string `env:"FORMAT"` // text | json; empty picks by App.Env
	MongoURI        string `env:"MONGO_URI"`
	MongoDatabase   string `env:"MONGO_DATABASE"   envDefault:"storefront"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"logs"`
}

type Storage struct {
	Disk       string `env:"DISK"        envDefault:"local"` // local | s3
	LocalRoot  string `env:"LOCAL_ROOT"  envDefault:"storage"`
	URL        string `env:"URL"         envDefault:"http://localhost:8080/storage"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION"   envDefault:"ap-southeast-1"`
	S3Key      string `env:"S3_KEY"`
	S3Secret   string `env:"S3_SECRET"`
	S3Endpoint string `env:"S3_ENDPOINT"`
	S3URL      string `env:"S3_URL"`
}
