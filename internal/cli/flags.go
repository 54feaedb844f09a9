package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`

	Events string `long:"events" description:"Override the events document (path or http(s) URL)"`
	Routes string `long:"routes" description:"Override the routes document (path or http(s) URL)"`
	Mode   string `long:"mode" description:"Override the timeline mode: continuous | discrete"`

	logLevel string // set by commands with their own --log-level
}

// DomainCommand summarises the time domain and the loaded records.
type DomainCommand struct {
	globals *GlobalFlags
	version string
}

// ShowCommand prints the records visible at one control position.
type ShowCommand struct {
	At string `long:"at" description:"Control value: a time (continuous) or a stop index (discrete). Defaults to the initial position"`

	globals *GlobalFlags
	version string
}

// ReplayCommand steps through every control stop in order.
type ReplayCommand struct {
	NonEmpty bool `long:"non-empty" description:"Only print stops with visible records"`

	globals *GlobalFlags
	version string
}

// PopupCommand prints the popup markup of one record.
type PopupCommand struct {
	Kind  string `long:"kind" description:"Record kind: event | route" default:"event"`
	Index int    `long:"index" description:"Position of the record in its source document (required)" default:"-1"`

	globals *GlobalFlags
	version string
}

// ClassifyCommand resolves categories to visual classes.
type ClassifyCommand struct {
	globals *GlobalFlags
	version string
}

// ServeCommand serves the map session over HTTP.
type ServeCommand struct {
	Host     string `long:"host" description:"Override listen host"`
	Port     int    `long:"port" description:"Override listen port"`
	LogLevel string `long:"log-level" description:"Override log level"`

	globals *GlobalFlags
	version string
}
