package git

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

type Config struct {
	URL        string `toml:"URL" json:"URL"`
	Branch     string `toml:"branch" json:"branch"`
	PrivateKey string `koanf:"private_key" toml:"private_key" json:"private_key"`
	Username   string `toml:"username" json:"username"`
	Password   string `toml:"password" json:"password"`
	Insecure   bool   `koanf:"insecure" toml:"insecure" json:"insecure"`
	CloneDir   string `toml:"clone_dir" json:"clone_dir"`
}

func NewConfig(k *koanf.Koanf, cloneDir, remoteURL string) (*Config, error) {
	var c Config

	c.Branch = k.String("git.branch")
	c.PrivateKey = k.String("git.private_key")
	c.Insecure = k.Bool("git.insecure")
	c.Username = k.String("git.username")
	c.Password = k.String("git.password")
	c.CloneDir = cloneDir
	c.URL = remoteURL
	return &c, nil
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("Branch: %v\n", c.Branch)
	result += fmt.Sprintf("Allow Insecure: %v\n", c.Insecure)
	if c.PrivateKey != "" {
		result += fmt.Sprintf("PrivateKey file: %v\n", c.PrivateKey)
	}
	if c.Username != "" {
		result += fmt.Sprintf("Username: %v\n", c.Username)
	}
	return result
}
