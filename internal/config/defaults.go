package config

import "time"

// DefaultSandboxRole is the SELECT-only role created by the migrations.
const DefaultSandboxRole = "sql_trainer_sandbox"

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			BaseURL:         "http://localhost:8080",
			TokenIssuer:     "go-sql-trainer",
			SessionDuration: 24 * time.Hour,
			ResetTokenTTL:   time.Hour,
			LogLevel:        "debug",
		},
		DB: DB{
			Host:         "localhost",
			Port:         5432,
			SSLMode:      "disable",
			MaxOpenConns: 10,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 60 * time.Second,
		},
		Mail: Mail{
			Host: "smtp.gmail.com",
			Port: 587,
			From: "noreply@sqldevelopers.com",
		},
		Sandbox: Sandbox{
			StatementTimeout: 5 * time.Second,
			MaxRows:          1000,
			Role:             DefaultSandboxRole,
		},
		Export: Export{
			Dir: "static",
		},
		Workers: Workers{
			ResetTokenPurgeInterval: 10 * time.Minute,
		},
	}
}
