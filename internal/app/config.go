package app

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultHomeDir is the config directory name under the user's home.
const DefaultHomeDir = ".idwallet"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string      // config directory, e.g. $HOME/.idwallet
	KDF     string      // password KDF: sha3 (default), argon2id or scrypt
	Verbose bool        // development logging at debug level
	Logger  *zap.Logger // optional; built from Verbose when nil
}

// DefaultHome returns $HOME/.idwallet, or .idwallet when the home directory
// cannot be determined.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDir
	}
	return filepath.Join(home, DefaultHomeDir)
}

// NewLogger builds the CLI logger. Verbose selects a development logger at
// debug level; otherwise a production logger that only reports warnings.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
