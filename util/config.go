package util

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"log"
	"os"
	"strconv"
)

const Name = "kigo"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host     string
		SshPort  int    `yaml:"sshPort"`
		HttpPort int    `yaml:"httpPort"`
		DbFile   string `yaml:"dbFile"`
		Place    string `yaml:"place"`
		Closed   bool   `yaml:"closed"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	configPath := ResolveFilePath(ConfigFileName)

	var buf []byte
	var err error

	buf, err = os.ReadFile(configPath)
	if err != nil {
		// Fall back to the embedded defaults and seed a user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("KIGO_HOST")
	envSshPort := os.Getenv("KIGO_SSHPORT")
	envHttpPort := os.Getenv("KIGO_HTTPPORT")
	envDbFile := os.Getenv("KIGO_DBFILE")
	envPlace := os.Getenv("KIGO_PLACE")
	envClosed := os.Getenv("KIGO_CLOSED")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envSshPort != "" {
		v, err := strconv.Atoi(envSshPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.SshPort = v
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.HttpPort = v
	}

	if envDbFile != "" {
		c.Conf.DbFile = envDbFile
	}

	if envPlace != "" {
		c.Conf.Place = envPlace
	}

	if envClosed == "true" {
		c.Conf.Closed = true
	}

	return c, nil
}
