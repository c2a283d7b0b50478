package app

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// SecretKey signs every token. There is no default: a predictable
	// secret would let anyone mint valid tokens.
	SecretKey string `env:"DIRECTORY_SECRET_KEY,required"`
	Algorithm string `env:"DIRECTORY_ALGORITHM" envDefault:"HS256"`

	AccessTokenTTL  time.Duration `env:"DIRECTORY_ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTokenTTL time.Duration `env:"DIRECTORY_REFRESH_TOKEN_TTL" envDefault:"360h"`

	DatabaseFile string `env:"DIRECTORY_DATABASE_FILE" envDefault:"directory.db"`

	// RootUserEmail identifies the administrative user ensured at
	// startup. With an empty RootUserPassword a password is generated
	// on first boot and logged once.
	RootUserEmail    string `env:"DIRECTORY_ROOT_USER_EMAIL" envDefault:"root@localhost"`
	RootUserPassword string `env:"DIRECTORY_ROOT_USER_PASSWORD"`

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
