package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Transactions     string   `json:"transactions" yaml:"transactions" toml:"transactions"`
	Rates            string   `json:"rates" yaml:"rates" toml:"rates"`
	SampleGroups     int      `json:"sample_groups" yaml:"sample_groups" toml:"sample_groups"`
	Full             bool     `json:"full" yaml:"full" toml:"full"`
	VendorCategories []string `json:"vendor_categories" yaml:"vendor_categories" toml:"vendor_categories"`
	Channels         []string `json:"channels" yaml:"channels" toml:"channels"`
	Countries        []string `json:"countries" yaml:"countries" toml:"countries"`
	Cities           []string `json:"cities" yaml:"cities" toml:"cities"`
	Weekend          []string `json:"weekend" yaml:"weekend" toml:"weekend"`
	Fraud            []string `json:"fraud" yaml:"fraud" toml:"fraud"`
	Currency         string   `json:"currency" yaml:"currency" toml:"currency"`
	Views            []string `json:"views" yaml:"views" toml:"views"`
	ReportName       string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType       []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir              string   `json:"dir" yaml:"dir" toml:"dir"`
	Addr             string   `json:"addr" yaml:"addr" toml:"addr"`
}

// ServerConfig reúne as configurações do servidor HTTP lidas do ambiente.
type ServerConfig struct {
	Addr               string
	LogLevel           string
	AllowedOrigins     []string
	CacheTTLSeconds    int
	RateLimitPerSecond float64
	RateLimitBurst     int
	AWSProfile         string
	AWSRegion          string
	GCSCredentialsFile string
}
