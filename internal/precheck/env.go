package precheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/arunsidharrth/SDWAN/internal/checks"
)

const maskedValue = "***PROTECTED***"

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. It reports whether a
// file was loaded; a missing file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("loading %s: %w", path, err)
	}
	return true, nil
}

func (s *Suite) checkEnvironment(_ context.Context, rec *checks.Recorder) {
	c := s.Config.Controller
	for _, name := range []string{c.HostEnv, c.UsernameEnv, c.PasswordEnv} {
		value := s.Getenv(name)
		if value == "" {
			rec.Fail("Environment Variable: "+name, "Not set - Required for authentication")
			continue
		}
		if name == c.PasswordEnv || strings.Contains(strings.ToUpper(name), "PASSWORD") {
			value = maskedValue
		}
		rec.Pass("Environment Variable: "+name, "Set to: "+value)
	}

	if value := s.Getenv(c.PortEnv); value != "" {
		rec.Pass("Optional Variable: "+c.PortEnv, "Set to: "+value)
	} else {
		rec.Warn("Optional Variable: "+c.PortEnv, fmt.Sprintf("Not set - Will use default (%d)", c.DefaultPort))
	}
}
