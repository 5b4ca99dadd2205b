package types

import "time"

// ColumnMap names the source columns for each Record field. The defaults
// match the metabolomics landscape export.
type ColumnMap struct {
	Category string `json:"category" yaml:"category" mapstructure:"category"`
	Year     string `json:"year" yaml:"year" mapstructure:"year"`
	Title    string `json:"title" yaml:"title" mapstructure:"title"`
	Abstract string `json:"abstract" yaml:"abstract" mapstructure:"abstract"`
	Authors  string `json:"authors" yaml:"authors" mapstructure:"authors"`
	Journal  string `json:"journal" yaml:"journal" mapstructure:"journal"`
	X        string `json:"x" yaml:"x" mapstructure:"x"`
	Y        string `json:"y" yaml:"y" mapstructure:"y"`
}

// DefaultColumns returns the column names used by the published dataset.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		Category: "predicted_category",
		Year:     "pub_year",
		Title:    "title",
		Abstract: "abstract",
		Authors:  "authors",
		Journal:  "journal_title",
		X:        "tsne_2D_x",
		Y:        "tsne_2D_y",
	}
}

// WithDefaults fills empty column names from DefaultColumns.
func (c ColumnMap) WithDefaults() ColumnMap {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Category, d.Category)
	fill(&c.Year, d.Year)
	fill(&c.Title, d.Title)
	fill(&c.Abstract, d.Abstract)
	fill(&c.Authors, d.Authors)
	fill(&c.Journal, d.Journal)
	fill(&c.X, d.X)
	fill(&c.Y, d.Y)
	return c
}

// DatasetConfig holds settings for loading the embedding table.
type DatasetConfig struct {
	// Path is the dataset file: .xlsx, .csv, or a SQLite snapshot (.db, .sqlite).
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Sheet selects the xlsx worksheet. Empty uses the first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`

	// Columns maps source column names to Record fields.
	Columns ColumnMap `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// StoreConfig holds settings for the SQLite snapshot.
type StoreConfig struct {
	// Path is the SQLite database file (e.g. "data/landscape.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ExplorerConfig holds settings for keyword matching and trend aggregation.
type ExplorerConfig struct {
	// ORSeparator splits one keyword entry into alternative sub-patterns (default "|").
	ORSeparator string `json:"or_separator" yaml:"or_separator" mapstructure:"or_separator"`

	// DefaultField is searched when a query names no field (default abstract).
	DefaultField Field `json:"default_field" yaml:"default_field" mapstructure:"default_field"`

	// ExcludeCurrentYear drops the current calendar year from trend series,
	// since it is undersampled.
	ExcludeCurrentYear bool `json:"exclude_current_year" yaml:"exclude_current_year" mapstructure:"exclude_current_year"`

	// ExcludeYears lists further incomplete years to drop from trend series.
	ExcludeYears []int `json:"exclude_years,omitempty" yaml:"exclude_years,omitempty" mapstructure:"exclude_years"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr         string        `json:"addr" yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
}

// Config groups all settings read from landscape.yaml.
type Config struct {
	LogLevel string         `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Dataset  DatasetConfig  `json:"dataset" yaml:"dataset" mapstructure:"dataset"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Explorer ExplorerConfig `json:"explorer" yaml:"explorer" mapstructure:"explorer"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Dataset: DatasetConfig{
			Path:    "data/landscape.xlsx",
			Columns: DefaultColumns(),
		},
		Store: StoreConfig{
			Path: "data/landscape.db",
		},
		Explorer: ExplorerConfig{
			ORSeparator:        "|",
			DefaultField:       FieldAbstract,
			ExcludeCurrentYear: true,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}
