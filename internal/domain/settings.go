package domain

// SettingKey defines a process setting with its metadata. Settings are read
// from flags and STARCLUSTER_* environment variables; they are distinct from
// the cluster configuration file.
type SettingKey struct {
	Name        string
	Default     string
	Description string
}

// SettingKeys defines every process setting. Order determines display order.
var SettingKeys = []SettingKey{
	{
		Name:        "debug",
		Default:     "false",
		Description: "Print debug messages",
	},
	{
		Name:        "config",
		Default:     "", // Set dynamically to paths.ConfigFilePath()
		Description: "Cluster configuration file",
	},
	{
		Name:        "pager",
		Default:     "",
		Description: "Pager command for long output (falls back to $PAGER, then less -FRSX)",
	},
	{
		Name:        "color",
		Default:     "true",
		Description: "Color output on terminals (true/false)",
	},
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Also write messages to the log file (true/false)",
	},
	{
		Name:        "log_level",
		Default:     "debug",
		Description: "Minimum level written to the log file",
	},
}

var settingKeyMap map[string]SettingKey

func init() {
	settingKeyMap = make(map[string]SettingKey, len(SettingKeys))
	for _, key := range SettingKeys {
		settingKeyMap[key.Name] = key
	}
}

// GetSettingKey returns the SettingKey for a given name.
func GetSettingKey(name string) (SettingKey, bool) {
	key, ok := settingKeyMap[name]
	return key, ok
}

// SettingDefault returns the default value for a setting.
func SettingDefault(name string) (string, bool) {
	if key, ok := settingKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}
