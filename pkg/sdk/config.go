package sdk

import (
	"context"
	"io"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	yaml "gopkg.in/yaml.v2"
)

const DefaultAPIServer string = "http://localhost:8080"

type Config struct {
	APIServer   string `yaml:"apiServer"`
	AppID       string `yaml:"appID"`
	AppSecret   string `yaml:"appSecret"`
	AccessToken string `yaml:"accessToken"`
	Debug       bool   `yaml:"debug"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}

func ConfigFromEnvironment(ctx context.Context) *Config {
	return &Config{
		APIServer:   env.GetVariableOrDefault(ctx, "MAILBOX_API_SERVER", DefaultAPIServer),
		AppID:       env.GetVariableOrDefault(ctx, "MAILBOX_APP_ID", ""),
		AppSecret:   env.GetVariableOrDefault(ctx, "MAILBOX_APP_SECRET", ""),
		AccessToken: env.GetVariableOrDefault(ctx, "MAILBOX_ACCESS_TOKEN", ""),
		Debug:       env.GetVariableOrDefault(ctx, "MAILBOX_DEBUG", "false") == "true",
	}
}
