package config

type Config struct {
	Environment string      `yaml:"environment" validate:"required,oneof=production development"`
	Server      ServerCfg   `yaml:"server"`
	NATS        NATSCfg     `yaml:"nats" validate:"required"`
	Game        GameCfg     `yaml:"game"`
	Auth        AuthCfg     `yaml:"auth" validate:"required"`
	Chat        ChatCfg     `yaml:"chat"`
	Catalog     CatalogCfg  `yaml:"catalog"`
}

type ServerCfg struct {
	Addr string `yaml:"addr"`
}

type NATSCfg struct {
	URL           string `yaml:"url" validate:"required"`
	SubjectPrefix string `yaml:"subject_prefix"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
}

// GameCfg holds the host-adjustable round defaults. TargetAvg and MaxWin can
// be changed at runtime within the clamp bounds; MaxPicks is fixed per deploy.
type GameCfg struct {
	MaxWin        int  `yaml:"max_win" validate:"min=0"`
	TargetAvg     int  `yaml:"target_avg" validate:"min=0"`
	MaxPicks      int  `yaml:"max_picks" validate:"min=0"`
	MinGuaranteed int  `yaml:"min_guaranteed" validate:"min=0"`
	AllowForce    bool `yaml:"allow_force"`
}

type AuthCfg struct {
	AdminPassword  string `yaml:"admin_password" validate:"required"`
	SessionTTLHrs  int    `yaml:"session_ttl_hours"`
	SweepEveryMins int    `yaml:"sweep_every_minutes"`
}

type ChatCfg struct {
	JoinKeyword    string   `yaml:"join_keyword"`
	Channel        string   `yaml:"channel"`
	BotUsernames   []string `yaml:"bot_usernames"`
	MessageSubject string   `yaml:"message_subject"`
	StatusSubject  string   `yaml:"status_subject"`
}

type CatalogCfg struct {
	SourceURLs []string `yaml:"source_urls"`
	CacheDir   string   `yaml:"cache_dir"`
}
