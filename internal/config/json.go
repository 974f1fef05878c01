package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are accepted either as strings ("30s") or as integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		SecretKey       string   `json:"secret_key"`
		BaseURL         string   `json:"base_url"`
		TokenIssuer     string   `json:"token_issuer"`
		SessionDuration Duration `json:"session_duration"`
		ResetTokenTTL   Duration `json:"reset_token_ttl"`
		LogLevel        string   `json:"log_level"`
	} `json:"app,omitempty"`

	DB struct {
		DSN          string `json:"dsn"`
		Host         string `json:"host"`
		Port         int    `json:"port"`
		Name         string `json:"name"`
		User         string `json:"user"`
		Password     string `json:"password"`
		SSLMode      string `json:"sslmode"`
		MaxOpenConns int    `json:"max_open_conns"`
	} `json:"db,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"mail,omitempty"`

	Sandbox struct {
		StatementTimeout Duration `json:"statement_timeout"`
		MaxRows          int      `json:"max_rows"`
		Role             string   `json:"role"`
	} `json:"sandbox,omitempty"`

	Export struct {
		Dir       string `json:"dir"`
		Bucket    string `json:"bucket"`
		Prefix    string `json:"prefix"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
		UseSSL    bool   `json:"use_ssl"`
	} `json:"export,omitempty"`

	Workers struct {
		ResetTokenPurgeInterval Duration `json:"reset_token_purge_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SecretKey:       jsonCfg.App.SecretKey,
			BaseURL:         jsonCfg.App.BaseURL,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			SessionDuration: time.Duration(jsonCfg.App.SessionDuration),
			ResetTokenTTL:   time.Duration(jsonCfg.App.ResetTokenTTL),
			LogLevel:        jsonCfg.App.LogLevel,
		},
		DB: DB{
			DSN:          jsonCfg.DB.DSN,
			Host:         jsonCfg.DB.Host,
			Port:         jsonCfg.DB.Port,
			Name:         jsonCfg.DB.Name,
			User:         jsonCfg.DB.User,
			Password:     jsonCfg.DB.Password,
			SSLMode:      jsonCfg.DB.SSLMode,
			MaxOpenConns: jsonCfg.DB.MaxOpenConns,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
		},
		Sandbox: Sandbox{
			StatementTimeout: time.Duration(jsonCfg.Sandbox.StatementTimeout),
			MaxRows:          jsonCfg.Sandbox.MaxRows,
			Role:             jsonCfg.Sandbox.Role,
		},
		Export: Export{
			Dir:       jsonCfg.Export.Dir,
			Bucket:    jsonCfg.Export.Bucket,
			Prefix:    jsonCfg.Export.Prefix,
			Endpoint:  jsonCfg.Export.Endpoint,
			AccessKey: jsonCfg.Export.AccessKey,
			SecretKey: jsonCfg.Export.SecretKey,
			UseSSL:    jsonCfg.Export.UseSSL,
		},
		Workers: Workers{
			ResetTokenPurgeInterval: time.Duration(jsonCfg.Workers.ResetTokenPurgeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
