package manifest

import (
	"fmt"
	"maps"
	"os"

	"github.com/joho/godotenv"
)

// DBEnvKeys are the database settings read from a dotenv file.
var DBEnvKeys = []string{"DB_NAME", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT"}

// LoadEnvSecrets reads the DBEnvKeys from the dotenv file at path. A key
// already set in the process environment wins over the file, matching
// godotenv.Load. Keys present in neither are omitted.
func LoadEnvSecrets(path string) (map[string]string, error) {
	fileValues, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	values := make(map[string]string, len(DBEnvKeys))

	for _, key := range DBEnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
			continue
		}

		if v, ok := fileValues[key]; ok {
			values[key] = v
		}
	}

	return values, nil
}

// MergeSecrets adds values to the db_secrets of the named component,
// creating the map when the component had none. Existing keys are
// overwritten.
func (c *Configuration) MergeSecrets(component string, values map[string]string) error {
	comp, ok := c.Component(component)
	if !ok {
		return &FieldError{Field: "env-component", Err: fmt.Errorf("%w %q", ErrUnknownComponent, component)}
	}

	if comp.DBSecrets == nil {
		comp.DBSecrets = make(map[string]string, len(values))
	}

	maps.Copy(comp.DBSecrets, values)

	return nil
}
