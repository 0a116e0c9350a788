package commands

import (
	"github.com/mosaicnetworks/utxochain/src/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	_config = config.NewDefaultConfig()
)

func init() {
	RootCmd.PersistentFlags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	RootCmd.PersistentFlags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	RootCmd.PersistentFlags().String("log-file", _config.LogFile, "Also write the logs to this file")
}

//RootCmd is the root command for utxochain
var RootCmd = &cobra.Command{
	Use:              "utxochain",
	Short:            "UTXO ledger tree and gossip consensus",
	TraverseChildren: true,
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/utxochain.toml (.json, .yaml also work)
	viper.SetConfigName("utxochain")
	viper.AddConfigPath(_config.DataDir)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.SetDataDir(_config.DataDir)

	return nil
}

func logConfig(cmd string, fields logrus.Fields) {
	fields["DataDir"] = _config.DataDir
	fields["LogLevel"] = _config.LogLevel
	_config.Logger().WithFields(fields).Debug(cmd)
}
