package main

import (
	"github.com/pulseplan/pulseplan/internal/engine/conf"
	"github.com/pulseplan/pulseplan/internal/pkg/mail"
	"github.com/pulseplan/pulseplan/pkg/cache"
	"github.com/pulseplan/pulseplan/pkg/http"
	"github.com/pulseplan/pulseplan/pkg/storage"
)

func provideConf(configPath string) conf.AppConfig {
	return conf.NewConf(configPath)
}

func provideHttpConfig(appConf conf.AppConfig) *http.Http {
	return &appConf.Http
}

func provideAuthConfig(appConf conf.AppConfig) *http.Auth {
	return &appConf.Http.Auth
}

func provideRedisConfig(appConf conf.AppConfig) *cache.Redis {
	return &appConf.Redis
}

func provideStorageConfig(appConf conf.AppConfig) *storage.Storage {
	return &appConf.Storage
}

func provideMailConfig(appConf conf.AppConfig) *mail.Mail {
	return &appConf.Mail
}

func provideVaultKey(appConf conf.AppConfig) string {
	return appConf.Vault.Key
}
