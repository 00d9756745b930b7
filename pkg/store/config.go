package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where the durable backend lives on disk.
type Config interface {
	DatabasePath() string
	ChatPath() string
}

func LoadConfig() (Config, error) {
	viper.SetDefault("database", "~/.agenda.db")
	viper.SetDefault("chat", "~/.agenda.chat")
	viper.SetConfigName(".agenda") // .yaml is implicit
	viper.SetEnvPrefix("AGENDA")
	viper.AutomaticEnv()

	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	return &fileConfig{
		Database: expand(viper.GetString("database")),
		Chat:     expand(viper.GetString("chat")),
	}, nil
}

type fileConfig struct {
	Database string `json:"database"`
	Chat     string `json:"chat"`
}

func (f *fileConfig) DatabasePath() string {
	return f.Database
}

func (f *fileConfig) ChatPath() string {
	return f.Chat
}

func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
