package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the directory layout omnibar uses.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/omnibar)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/omnibar)
	DataDir string

	// CacheDir is the directory for cache files (~/.cache/omnibar)
	CacheDir string
}

// DefaultPaths returns the default paths following the XDG Base Directory
// spec. On Windows it uses %APPDATA% / %LOCALAPPDATA%.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "omnibar"),
			DataDir:   filepath.Join(localAppData, "omnibar"),
			CacheDir:  filepath.Join(localAppData, "omnibar", "cache"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "omnibar"),
		DataDir:   filepath.Join(dataHome, "omnibar"),
		CacheDir:  filepath.Join(cacheHome, "omnibar"),
	}
}

// ConfigFile returns the path of the YAML config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
