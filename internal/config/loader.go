package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load builds the configuration from defaults, then dotenv files, then the
// process environment. Later sources win. With no envFiles, ".env" is read
// when present. Variables already set in the environment are never
// overwritten by dotenv files.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotenv(envFiles); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	envToPath := EnvMappings()
	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key string, value string) (string, any) {
			path, ok := envToPath[key]
			if !ok || strings.TrimSpace(value) == "" {
				return "", nil
			}
			return path, strings.TrimSpace(value)
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.normalize()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize folds case-insensitive enumerations to the lowercase forms the
// validator and consumers expect
func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Embedding.Provider = strings.ToLower(strings.TrimSpace(c.Embedding.Provider))
}

// Validate checks cfg against its struct constraints. Messages name the
// environment variable of each offending field.
func Validate(cfg *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s=%v fails %s%s", fe.Field(), fe.Value(), fe.Tag(), param(fe.Param())))
		}
		return fmt.Errorf("configuration validation failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func param(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

// EnvMappings maps each environment variable to its koanf path, derived from
// the env struct tags of Config
func EnvMappings() map[string]string {
	out := make(map[string]string)
	collectEnv(reflect.TypeOf(Config{}), "", out)
	return out
}

func collectEnv(t reflect.Type, prefix string, out map[string]string) {
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		key := fld.Tag.Get("koanf")
		if key == "" {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if fld.Type.Kind() == reflect.Struct && fld.Tag.Get("env") == "" {
			collectEnv(fld.Type, path, out)
			continue
		}
		if name := fld.Tag.Get("env"); name != "" {
			out[name] = path
		}
	}
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}
