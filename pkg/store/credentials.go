package store

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseCredentials decodes the YAML content of credentials.yaml.
// Surrounding whitespace in either field is dropped.
func ParseCredentials(data []byte) (Credentials, error) {
	var c Credentials
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("parsing %s: %w", credentialsFile, err)
	}
	return c.Trimmed(), nil
}

// SerializeCredentials renders credentials as YAML.
func SerializeCredentials(c Credentials) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("serializing credentials: %w", err)
	}
	return data, nil
}
