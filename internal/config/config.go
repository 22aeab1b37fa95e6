package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
	// TTF с кириллицей для PDF-отчётов; без него отчёты собираются
	// core-шрифтом
	ReportFont string `yaml:"report_font"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// срок жизни сессии в днях (по умолчанию 30)
	SessionTTLDays int `yaml:"session_ttl_days"`
}

type Config struct {
	Server struct {
		Port int  `yaml:"port"`
		Dev  bool `yaml:"dev"` // подробные ошибки в ответах
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Telegram TelegramConfig `yaml:"telegram"`
	Email    struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Files FilesConfig `yaml:"files"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	// секреты переопределяются через ENV
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Files.ReportFont == "" {
		cfg.Files.ReportFont = "assets/fonts/DejaVuSans.ttf"
	}
	if cfg.Auth.SessionTTLDays <= 0 {
		cfg.Auth.SessionTTLDays = 30
	}
	return &cfg
}
