package config

type yamlConfig struct {
	Statemelt yamlStatemelt `yaml:"statemelt"`
}

type yamlStatemelt struct {
	Source yamlSource `yaml:"source"`
	Output yamlOutput `yaml:"output"`
	Log    yamlLog    `yaml:"log"`
}

type yamlSource struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`
	RecordsPath string `yaml:"records_path"`
	Table       string `yaml:"table"`
}

type yamlOutput struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

type yamlLog struct {
	Debug   *bool `yaml:"debug"`
	NoColor *bool `yaml:"no_color"`
}

// envConfig mirrors yamlConfig for STATEMELT_* variables. Empty strings and nil mean unset.
type envConfig struct {
	Source struct {
		Path        string `env:"PATH"`
		Format      string `env:"FORMAT"`
		RecordsPath string `env:"RECORDS_PATH"`
		Table       string `env:"TABLE"`
	} `envPrefix:"SOURCE_"`

	Output struct {
		Format string `env:"FORMAT"`
		Path   string `env:"PATH"`
	} `envPrefix:"OUTPUT_"`

	Log struct {
		Debug   *bool `env:"DEBUG"`
		NoColor *bool `env:"NO_COLOR"`
	} `envPrefix:"LOG_"`
}
