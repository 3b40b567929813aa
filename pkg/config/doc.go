// Package config provides configuration management for the chat logger.
//
// Configuration is read from a YAML file, completed with defaults,
// optionally overridden from the environment, and validated.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("chatlogger.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("chatlogger.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CHATLOGGER_SECTION_FIELD:
//
//	CHATLOGGER_DATABASE_TABLE_NAME=bot2_chat
//	CHATLOGGER_PURGE_MAX_AGE=30d
//	CHATLOGGER_PURGE_HOUR=3
//	CHATLOGGER_HOST_TIME_ZONE=CET
//
// # Example Configuration
//
//	host:
//	  time_zone: CET
//	database:
//	  table_name: chatlog
//	  backend: sqlite
//	  sqlite:
//	    path: data/chatlog.db
//	purge:
//	  max_age: 30d
//	  hour: 3
//	  minute: 0
//	bus:
//	  source: stdin
//
// # Hot Reload
//
// FileWatcher watches the configuration file with fsnotify and calls back
// with the new configuration once writes settle. A file that fails to
// load keeps the previous configuration in effect.
//
// # Global Configuration
//
// Initialize stores the loaded configuration as a process-wide singleton
// available through GetConfig; ReloadConfig replaces it.
package config
