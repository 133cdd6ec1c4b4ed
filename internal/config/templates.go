package config

import (
	"fmt"
	"os"
)

// Template returns the commented run profile template.
func Template() string {
	return runProfileTemplate
}

// WriteTemplate writes the run profile template to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(runProfileTemplate), 0o600)
}

const runProfileTemplate = `# minitoolchain run profile. Flags given on the command line win over
# values set here.

backend = "sim"
shots = 1000
circuit = "bell"

# "none" or a registered mitigator name (toy).
mitigation = "none"
# calibration_id = "cal-001"

# json or yaml
format = "json"

[tags]
owner = "local"
`
