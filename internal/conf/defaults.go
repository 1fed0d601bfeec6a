// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Tanka")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "tanka.log")
	viper.SetDefault("main.log.level", "info")
	viper.SetDefault("main.log.maxsizemb", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxagedays", 28)

	viper.SetDefault("boxes", []map[string]any{})

	viper.SetDefault("downloads.dir", "downloads/")
	viper.SetDefault("output.analysisdir", "analysis/")
	viper.SetDefault("output.save", false)

	viper.SetDefault("analysis.scorethreshold", 0.5)
	viper.SetDefault("analysis.topn", 10)
	viper.SetDefault("analysis.excludespecies", []string{})
	viper.SetDefault("analysis.lookbackdays", 7)
	viper.SetDefault("analysis.combineexact", false)
	viper.SetDefault("analysis.includetime", false)

	viper.SetDefault("timezone.utcoffsethours", -8)
}
