package warehouse

// Config holds configuration for the warehouse connection.
type Config struct {
	// Driver selects the backend (mysql, postgres, clickhouse).
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the warehouse host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the warehouse port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the warehouse user.
	User string `mapstructure:"user" default:"root"`
	// Password is the warehouse password.
	Password string `mapstructure:"password" default:""`
	// Name is the database queries run against.
	Name string `mapstructure:"name" default:"vault"`
	// TimeoutSeconds bounds connection setup and per-query I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Secure enables TLS where the backend supports it.
	Secure bool `mapstructure:"secure" default:"false"`
}
