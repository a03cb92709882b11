package provisioner

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"

	"github.com/knadh/koanf/v2"
	"selenite.systems/groundwork/internal/envfile"
	gitsource "selenite.systems/groundwork/internal/source/git"
)

// defaultPackages is the fixed OS package set the bot needs before
// anything else can run.
var defaultPackages = []string{"python3", "python3-venv", "python3-pip", "git"}

type Config struct {
	RepoURL      string
	InstallDir   string
	ServiceName  string
	BotToken     string
	DatabasePath string
	Packages     []string
	Requirements string
	VenvDir      string
	ServiceDir   string
	OutputDir    string
	Python       string
	Timeout      int
	Debug        bool
	Quiet        bool
	AutoConfirm  bool
	GitConfig    *gitsource.Config
	User         *user.User
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	var err error
	c.RepoURL = k.String("repo")
	c.InstallDir = k.String("installdir")
	c.ServiceName = k.String("service")
	c.BotToken = k.String("token")
	c.DatabasePath = k.String("dbpath")
	c.Packages = k.Strings("packages")
	c.Requirements = k.String("requirements")
	c.VenvDir = k.String("venvdir")
	c.ServiceDir = k.String("servicedir")
	c.OutputDir = k.String("outputdir")
	c.Python = k.String("python")
	c.Timeout = k.Int("timeout")
	c.Debug = k.Bool("debug")
	c.Quiet = k.Bool("quiet")
	c.AutoConfirm = k.Bool("yes")

	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	c.User = currentUser

	// calculate defaults
	installPath := "/opt/challengebot"
	servicePath := "/etc/systemd/system"
	outputPath := "/var/lib/groundwork"
	if c.User.Username != "root" {
		home := c.User.HomeDir
		installPath = filepath.Join(home, ".local", "share", "challengebot")
		servicePath = filepath.Join(home, ".config", "systemd", "user")
		outputPath = filepath.Join(home, ".local", "share", "groundwork")
	}
	if c.InstallDir == "" {
		c.InstallDir = installPath
	}
	if c.ServiceDir == "" {
		c.ServiceDir = servicePath
	}
	if c.OutputDir == "" {
		c.OutputDir = outputPath
	}
	if c.ServiceName == "" {
		c.ServiceName = "challengebot.service"
	}
	if c.BotToken == "" {
		c.BotToken = envfile.PlaceholderToken
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.InstallDir, "challenge.db")
	}
	if len(c.Packages) == 0 {
		c.Packages = defaultPackages
	}
	if c.Requirements == "" {
		c.Requirements = "requirements.txt"
	}
	if c.VenvDir == "" {
		c.VenvDir = "venv"
	}
	if c.Timeout == 0 {
		c.Timeout = 30
	}
	if k.Exists("git") {
		c.GitConfig, err = gitsource.NewConfig(k, c.InstallDir, c.RepoURL)
		if err != nil {
			return nil, err
		}
	}

	return &c, nil
}

func (c *Config) Validate() error {
	if c.RepoURL == "" {
		return errors.New("need repository URL")
	}
	if c.InstallDir == "" {
		return errors.New("need install directory")
	}
	if c.ServiceDir == "" {
		return errors.New("need services directory")
	}
	if c.ServiceName == "" {
		return errors.New("need service name")
	}
	return nil
}

// EnvFilePath is where the bot's env file lands inside the clone.
func (c *Config) EnvFilePath() string {
	return filepath.Join(c.InstallDir, ".env")
}

// VenvPath is the isolated runtime environment, a fixed subdirectory of
// the clone.
func (c *Config) VenvPath() string {
	return filepath.Join(c.InstallDir, c.VenvDir)
}

func (c *Config) RequirementsPath() string {
	return filepath.Join(c.InstallDir, c.Requirements)
}

// UnitPath is the unit file shipped inside the repository, copied
// verbatim into the service directory at registration.
func (c *Config) UnitPath() string {
	return filepath.Join(c.InstallDir, c.ServiceName)
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("Repository: %v\n", c.RepoURL)
	result += fmt.Sprintf("Install dir: %v\n", c.InstallDir)
	result += fmt.Sprintf("Service: %v\n", c.ServiceName)
	result += fmt.Sprintf("Service dir: %v\n", c.ServiceDir)
	result += fmt.Sprintf("Database path: %v\n", c.DatabasePath)
	result += fmt.Sprintf("Packages: %v\n", c.Packages)
	result += fmt.Sprintf("Requirements: %v\n", c.Requirements)
	result += fmt.Sprintf("Venv dir: %v\n", c.VenvDir)
	result += fmt.Sprintf("Service timeout: %v\n", c.Timeout)
	result += fmt.Sprintf("Debug mode: %v\n", c.Debug)
	result += fmt.Sprintf("Auto-confirm: %v\n", c.AutoConfirm)
	result += fmt.Sprintf("User: %v\n", c.User.Username)
	if c.GitConfig != nil {
		result += c.GitConfig.String()
	}
	return result
}
