package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Driver   string `mapstructure:"driver"` // mysql | sqlite
	Path     string `mapstructure:"path"`   // sqlite file
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

// DSN renders the go-sql-driver/mysql connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

// NotesConfig selects the backing table for note collections: "memory", "redis" or "sql".
type NotesConfig struct {
	Driver string `mapstructure:"driver"`
}

type StorageConfig struct {
	Driver     string        `mapstructure:"driver"` // s3 | local
	Bucket     string        `mapstructure:"bucket"`
	Region     string        `mapstructure:"region"`
	Endpoint   string        `mapstructure:"endpoint"` // S3-compatible endpoint override (minio, localstack)
	PathStyle  bool          `mapstructure:"path_style"`
	LocalDir   string        `mapstructure:"local_dir"`
	PublicURL  string        `mapstructure:"public_url"` // base URL local objects are reachable under
	ServeLocal bool          `mapstructure:"serve_local"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type STTConfig struct {
	Provider   string `mapstructure:"provider"` // whisper | openai
	WhisperURL string `mapstructure:"whisper_url"`
}

type TranslationConfig struct {
	Provider     string   `mapstructure:"provider"` // gemini | openai | ollama
	Target       string   `mapstructure:"target"`
	GeminiAPIKey string   `mapstructure:"gemini_api_key"`
	GeminiModel  string   `mapstructure:"gemini_model"`
	OpenAIModel  string   `mapstructure:"openai_model"`
	OllamaURLs   []string `mapstructure:"ollama_urls"`
	OllamaModel  string   `mapstructure:"ollama_model"`
}

type TTSConfig struct {
	Provider string `mapstructure:"provider"` // piper | openai
	PiperURL string `mapstructure:"piper_url"`
	Voice    string `mapstructure:"voice"`
	// per spoken-language voice override, e.g. es: es_ES-davefx-medium
	Voices map[string]string `mapstructure:"voices"`
}

type CaptureConfig struct {
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	AudioFormat string        `mapstructure:"audio_format"` // ffmpeg input format, e.g. pulse, avfoundation, dshow
	AudioDevice string        `mapstructure:"audio_device"`
	VideoFormat string        `mapstructure:"video_format"` // e.g. v4l2, avfoundation, dshow
	VideoDevice string        `mapstructure:"video_device"`
	SampleRate  int           `mapstructure:"sample_rate"`
	Pause       time.Duration `mapstructure:"pause"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	MaxPhrase   time.Duration `mapstructure:"max_phrase"`
	Calibration time.Duration `mapstructure:"calibration"`
	WorkDir     string        `mapstructure:"work_dir"`
}

type AdaptersConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	UniformLoginErrors bool `mapstructure:"uniform_login_errors"`
}

type ClientConfig struct {
	APIBaseURL  string `mapstructure:"api_base_url"`
	SessionFile string `mapstructure:"session_file"`
}

type Settings struct {
	Server      ServerConfig      `mapstructure:"server"`
	DB          DBConfig          `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Notes       NotesConfig       `mapstructure:"notes"`
	Storage     StorageConfig     `mapstructure:"storage"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	STT         STTConfig         `mapstructure:"stt"`
	Translation TranslationConfig `mapstructure:"translation"`
	TTS         TTSConfig         `mapstructure:"tts"`
	Capture     CaptureConfig     `mapstructure:"capture"`
	Adapters    AdaptersConfig    `mapstructure:"adapters"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Client      ClientConfig      `mapstructure:"client"`
	Env         string            `mapstructure:"env"`
	Debug       bool              `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.path", "voicetaker.db")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("notes.driver", "memory")
	v.SetDefault("storage.driver", "s3")
	v.SetDefault("storage.bucket", "notesaver")
	v.SetDefault("storage.local_dir", "media")
	v.SetDefault("storage.presign_ttl", time.Hour)
	v.SetDefault("stt.provider", "whisper")
	v.SetDefault("stt.whisper_url", "http://localhost:9000")
	v.SetDefault("translation.provider", "gemini")
	v.SetDefault("translation.target", "en")
	v.SetDefault("translation.gemini_model", "gemini-1.5-flash")
	v.SetDefault("translation.openai_model", "gpt-4o-mini")
	v.SetDefault("translation.ollama_model", "llama3.1:8b-instruct")
	v.SetDefault("tts.provider", "piper")
	v.SetDefault("tts.piper_url", "http://localhost:5000")
	v.SetDefault("capture.ffmpeg_path", "ffmpeg")
	v.SetDefault("capture.audio_format", "pulse")
	v.SetDefault("capture.audio_device", "default")
	v.SetDefault("capture.video_format", "v4l2")
	v.SetDefault("capture.video_device", "/dev/video0")
	v.SetDefault("capture.sample_rate", 16000)
	v.SetDefault("capture.pause", 800*time.Millisecond)
	v.SetDefault("capture.wait_timeout", 10*time.Second)
	v.SetDefault("capture.max_phrase", 2*time.Minute)
	v.SetDefault("capture.calibration", time.Second)
	v.SetDefault("adapters.timeout", 60*time.Second)
	v.SetDefault("client.api_base_url", "http://localhost:8000")
}

// Load reads config_<env>.yaml from the working directory or ~/.voicetaker,
// then applies VOICETAKER_* environment overrides.
func Load() (*Settings, error) {
	return LoadFrom(viper.New(), ".", "$HOME/.voicetaker")
}

func LoadFrom(v *viper.Viper, paths ...string) (*Settings, error) {
	setDefaults(v)
	v.SetEnvPrefix("voicetaker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config_" + genEnv(v))
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func genEnv(v *viper.Viper) string {
	env := v.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
