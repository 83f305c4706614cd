package config

// Redis connection part of configuration
type Redis struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Feedback relay configuration
type Feedback struct {
	ChannelID string `yaml:"channel_id"`
	LogDB     string `yaml:"logdb"`
}

// Source repository location for the source command
type Source struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch"`
}

// Private part of configuration
type Private struct {
	Token    string   `yaml:"token"`
	ClientID string   `yaml:"client_id"`
	Owners   []string `yaml:"owners"`
	Prefix   string   `yaml:"prefix"`
	Redis    Redis    `yaml:"redis"`
	Feedback Feedback `yaml:"feedback"`
	Source   Source   `yaml:"source"`
}

// Server specific part of configuration
type Server struct {
	GuildID  string   `yaml:"id"`
	Prefixes []string `yaml:"prefixes"`
}

// Root of configuration
type Root struct {
	Servers []Server `yaml:"servers"`
	Private Private  `yaml:"private"`
}
