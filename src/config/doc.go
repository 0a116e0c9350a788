// Package config defines the configuration of the utxochain command line tool.
//
// The same Config object drives the mine and simulate commands. It is filled
// from default values, then command line flags, then an optional configuration
// file ([datadir]/utxochain.toml, .json or .yaml). It produces the
// configuration objects of the blockchain and simulation packages.
package config
