package config

import "go.uber.org/fx"

// Module provides *Config assembled from flags, the environment and the dotenv file.
var Module = fx.Provide(Load)
