package config

// LimitsConfig содержит ограничения на входные данные.
type LimitsConfig struct {
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"MINIAPP_MAX_UPLOAD_BYTES" env-default:"20971520"`
	MaxTreeDepth   int   `yaml:"max_tree_depth" env:"MINIAPP_MAX_TREE_DEPTH" env-default:"1024"`
}
