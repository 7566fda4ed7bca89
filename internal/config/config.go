package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "QUIZOCR"

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Bank    BankConfig
	Matcher MatcherConfig
	OCR     OCRConfig
	Upload  UploadConfig
}

type ServerConfig struct {
	Port string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type BankConfig struct {
	Path           string
	URL            string
	TimeoutSeconds int
	MaxRetries     int
}

type MatcherConfig struct {
	QuestionThreshold float64
}

type OCRConfig struct {
	Languages []string
	MinHeight int
}

type UploadConfig struct {
	MaxBytes int64
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("bank.path", "question.json")
	v.SetDefault("bank.url", "https://shell.myxuebi.top/xiaomibl/question.json")
	v.SetDefault("bank.timeout_seconds", 10)
	v.SetDefault("bank.max_retries", 3)
	v.SetDefault("matcher.question_threshold", 0.5)
	v.SetDefault("ocr.languages", []string{"chi_sim", "eng"})
	v.SetDefault("ocr.min_height", 900)
	v.SetDefault("upload.max_bytes", 10<<20)
}

// Load reads config.yaml from ./config or the working directory, unless
// configFile names a file explicitly. Environment variables override the
// file, e.g. QUIZOCR_BANK_PATH for bank.path. A missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		log.Println("警告：未找到 config.yaml 文件，将使用默认值和环境变量进行配置。")
	}

	cfg := &Config{
		Server: ServerConfig{Port: v.GetString("server.port")},
		CORS:   CORSConfig{AllowedOrigins: v.GetStringSlice("cors.allowed_origins")},
		Bank: BankConfig{
			Path:           v.GetString("bank.path"),
			URL:            v.GetString("bank.url"),
			TimeoutSeconds: v.GetInt("bank.timeout_seconds"),
			MaxRetries:     v.GetInt("bank.max_retries"),
		},
		Matcher: MatcherConfig{
			QuestionThreshold: v.GetFloat64("matcher.question_threshold"),
		},
		OCR: OCRConfig{
			Languages: v.GetStringSlice("ocr.languages"),
			MinHeight: v.GetInt("ocr.min_height"),
		},
		Upload: UploadConfig{MaxBytes: v.GetInt64("upload.max_bytes")},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if th := c.Matcher.QuestionThreshold; th < 0 || th > 1 {
		return fmt.Errorf("配置项 matcher.question_threshold 必须在 [0,1] 区间内, 当前为 %v", th)
	}
	if c.Bank.Path == "" {
		return errors.New("配置项 bank.path 不能为空")
	}
	return nil
}
