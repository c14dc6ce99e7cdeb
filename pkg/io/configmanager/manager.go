// Package configmanager loads the pipeline descriptor from pipeline.yaml,
// environment variables, and defaults.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/sanketmote05/cicd-pipeline/pkg/apis/pipeline/v1alpha1"
	"github.com/sanketmote05/cicd-pipeline/pkg/utils/notify"
)

const (
	// ConfigFileName is the pipeline descriptor file name without extension.
	ConfigFileName = "pipeline"
	// ConfigFileType is the pipeline descriptor file format.
	ConfigFileType = "yaml"
	// EnvPrefix is the prefix for environment variable overrides (e.g.
	// CICD_SPEC_IMAGE_REGISTRY).
	EnvPrefix = "CICD"
)

// ConfigManager loads and caches the v1alpha1.Pipeline configuration.
// Configuration priority: defaults < config file < environment variables.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Pipeline
	Writer io.Writer

	configLoaded    bool
	configFileFound bool
}

// NewConfigManager creates a configuration manager writing notifications to writer.
func NewConfigManager(writer io.Writer) *ConfigManager {
	return &ConfigManager{
		Viper:  InitializeViper(),
		Config: v1alpha1.NewPipeline(),
		Writer: writer,
	}
}

// InitializeViper creates a Viper instance configured for pipeline.yaml lookup and
// CICD_-prefixed environment overrides.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType(ConfigFileType)
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperInstance.AutomaticEnv()
	bindEnvKeys(viperInstance, "", reflect.TypeOf(v1alpha1.Pipeline{}))

	return viperInstance
}

// bindEnvKeys registers every descriptor key with viper so environment overrides
// apply even when the config file omits the key. AutomaticEnv alone only surfaces
// variables for keys viper has already seen in the file.
func bindEnvKeys(viperInstance *viper.Viper, prefix string, structType reflect.Type) {
	for i := range structType.NumField() {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		key := envKeyName(field)
		if key != "" && prefix != "" {
			key = prefix + "." + key
		} else if key == "" {
			key = prefix
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(metav1.Duration{}) {
			bindEnvKeys(viperInstance, key, field.Type)

			continue
		}

		if key == "" {
			continue
		}

		// BindEnv only errors when called without a key.
		_ = viperInstance.BindEnv(key)
	}
}

// envKeyName derives the viper key segment for a field from its json tag.
// Inline embedded fields contribute no segment of their own.
func envKeyName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name != "" {
		return name
	}

	if field.Anonymous {
		return ""
	}

	return strings.ToLower(field.Name)
}

// LoadConfig loads the configuration, emitting notifications about the source used.
// The loaded config is cached; subsequent calls return the cached value.
func (m *ConfigManager) LoadConfig() (*v1alpha1.Pipeline, error) {
	return m.loadConfig(false)
}

// LoadConfigSilent loads the configuration without emitting notifications.
func (m *ConfigManager) LoadConfigSilent() (*v1alpha1.Pipeline, error) {
	return m.loadConfig(true)
}

// ConfigFileFound reports whether a descriptor file was read (vs. pure defaults).
func (m *ConfigManager) ConfigFileFound() bool {
	return m.configFileFound
}

func (m *ConfigManager) loadConfig(silent bool) (*v1alpha1.Pipeline, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.readConfig(silent)
	if err != nil {
		return nil, err
	}

	err = m.unmarshal()
	if err != nil {
		return nil, err
	}

	m.Config.SetDefaults()

	err = m.Config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline descriptor: %w", err)
	}

	m.configLoaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false

		if !silent {
			notify.Warningf(m.Writer, "no %s.%s found, using defaults", ConfigFileName, ConfigFileType)
		}

		return nil
	}

	m.configFileFound = true

	if !silent {
		notify.Infof(m.Writer, "using config %s", m.Viper.ConfigFileUsed())
	}

	return nil
}

func (m *ConfigManager) unmarshal() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			metav1DurationDecodeHook(),
		)
	}

	err := m.Viper.Unmarshal(m.Config, viper.DecoderConfigOption(decoderConfig))
	if err != nil {
		return fmt.Errorf("failed to unmarshal pipeline descriptor: %w", err)
	}

	return nil
}

// metav1DurationDecodeHook decodes duration strings ("5m", "90s") into
// metav1.Duration fields.
func metav1DurationDecodeHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(metav1.Duration{}) {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}

		parsed, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", value, err)
		}

		return metav1.Duration{Duration: parsed}, nil
	}
}
