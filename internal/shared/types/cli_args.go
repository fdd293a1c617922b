package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile       string
	TransactionsPath string
	RatesPath        string
	SampleGroups     int
	Full             bool

	VendorCategories []string
	Channels         []string
	Countries        []string
	Cities           []string
	IsWeekend        []bool
	IsFraud          []bool
	Currency         string

	Views      []string
	ReportName string
	ReportType []string
	Dir        string

	Addr string
}
