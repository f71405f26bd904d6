package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bill-detail/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, ".", cfg.Export.OutputDir)
	assert.True(t, cfg.Export.Compress)
	assert.Equal(t, "GLOBAL CITY MANAGEMENT", cfg.View.Title)
	assert.Equal(t, 800, cfg.View.WindowWidth)
	assert.Equal(t, 600, cfg.View.WindowHeight)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("SQLITE_PATH", "/tmp/x.db")
	v.Set("HTTP_PORT", "9090")
	v.Set("EXPORT_COMPRESS", "false")
	v.Set("VIEW_CURRENCY", "$")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.DB.SQLitePath)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Export.Compress)
	assert.Equal(t, "$", cfg.View.Currency)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mongo")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_FormatoDeLocalInvalido(t *testing.T) {
	v := viper.New()
	v.Set("VIEW_PARTY_FORMAT", "Shop %s")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "bills", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/bills?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u@h/d"
	assert.Equal(t, "postgres://u@h/d", c.ConnectionString())
}
