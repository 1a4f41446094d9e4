package monetary

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Override forces the class of one account.
type Override struct {
	AccountID string `yaml:"account"`
	Class     Class  `yaml:"class"`
	Reason    string `yaml:"reason,omitempty"`
}

type overridesFile struct {
	Overrides []Override `yaml:"overrides"`
}

// ReadOverrides decodes an overrides document.
func ReadOverrides(r io.Reader) ([]Override, error) {
	var f overridesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding monetary overrides: %w", err)
	}
	for i, o := range f.Overrides {
		if o.AccountID == "" {
			return nil, fmt.Errorf("override %d: missing account", i+1)
		}
		if !o.Class.Valid() {
			return nil, fmt.Errorf("override %d (%s): invalid class %q", i+1, o.AccountID, o.Class)
		}
	}
	return f.Overrides, nil
}

// WriteOverrides encodes overrides as YAML.
func WriteOverrides(w io.Writer, overrides []Override) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(overridesFile{Overrides: overrides}); err != nil {
		return fmt.Errorf("encoding monetary overrides: %w", err)
	}
	return enc.Close()
}

// LoadOverrides reads overrides from path. A missing file yields none.
func LoadOverrides(path string) ([]Override, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadOverrides(f)
}
