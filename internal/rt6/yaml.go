package rt6

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type partidasFile struct {
	Partidas []Partida `yaml:"partidas"`
}

// ReadPartidas decodes and validates a partidas document.
func ReadPartidas(r io.Reader) ([]Partida, error) {
	var f partidasFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding rt6 partidas: %w", err)
	}
	seen := make(map[string]bool, len(f.Partidas))
	for _, p := range f.Partidas {
		if p.ID == "" {
			return nil, fmt.Errorf("rt6 partida %q: missing id", p.Rubro)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate rt6 partida id %s", p.ID)
		}
		seen[p.ID] = true
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Partidas, nil
}

// WritePartidas encodes partidas as YAML.
func WritePartidas(w io.Writer, partidas []Partida) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(partidasFile{Partidas: partidas}); err != nil {
		return fmt.Errorf("encoding rt6 partidas: %w", err)
	}
	return enc.Close()
}

// LoadPartidas reads partidas from path. A missing file yields none.
func LoadPartidas(path string) ([]Partida, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadPartidas(f)
}

// SavePartidas writes partidas to path.
func SavePartidas(path string, partidas []Partida) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePartidas(f, partidas); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
