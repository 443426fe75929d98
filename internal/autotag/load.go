package autotag

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadTables reads keyword tables from a YAML file and merges them over DefaultTables.
// A top-level key present in the file (moods, warnings, spice, genres) replaces the
// corresponding default table wholesale; absent keys keep the defaults.
//
// Example:
//
//	genres:
//	  - name: Romantasy
//	    keywords: [romantasy, fae romance]
//	spice:
//	  - level: 5
//	    keywords: [explicit]
func LoadTables(path string) (Tables, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Tables{}, fmt.Errorf("load tag tables %q: %w", path, err)
	}

	var loaded Tables
	if err := k.Unmarshal("", &loaded); err != nil {
		return Tables{}, fmt.Errorf("decode tag tables %q: %w", path, err)
	}

	tables := DefaultTables()
	if k.Exists("moods") {
		tables.Moods = loaded.Moods
	}
	if k.Exists("warnings") {
		tables.Warnings = loaded.Warnings
	}
	if k.Exists("spice") {
		tables.Spice = loaded.Spice
	}
	if k.Exists("genres") {
		tables.Genres = loaded.Genres
	}

	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("invalid tag tables %q: %w", path, err)
	}
	return tables, nil
}

// Validate reports the first structural problem in the tables.
func (t Tables) Validate() error {
	check := func(table string, entries []Entry) error {
		for i, e := range entries {
			if strings.TrimSpace(e.Name) == "" {
				return fmt.Errorf("%s[%d]: name is required", table, i)
			}
			if len(e.Keywords) == 0 {
				return fmt.Errorf("%s[%d] %q: at least one keyword is required", table, i, e.Name)
			}
		}
		return nil
	}
	if err := check("moods", t.Moods); err != nil {
		return err
	}
	if err := check("warnings", t.Warnings); err != nil {
		return err
	}
	if err := check("genres", t.Genres); err != nil {
		return err
	}
	for i, e := range t.Spice {
		if e.Level < 1 || e.Level > 5 {
			return fmt.Errorf("spice[%d]: level %d out of range 1-5", i, e.Level)
		}
		if len(e.Keywords) == 0 {
			return fmt.Errorf("spice[%d]: at least one keyword is required", i)
		}
	}
	return nil
}
