// Package config loads settings for the xps line tools.
//
// # Layers
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd/)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← XPS_TRUNCATE_LIMIT=40 ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← xps.toml or xps.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file may be TOML (.toml) or YAML (.yaml, .yml). Unknown keys are
// rejected. A missing file is not an error; the defaults apply.
//
// # Basic Usage
//
//	cfg, err := config.Load("xps.toml")
//	if err != nil {
//	    return err
//	}
//	limit := cfg.Truncate.Limit
//
// Example TOML:
//
//	[log]
//	level = "debug"
//
//	[truncate]
//	limit = 40
//	head = 20
//	tail = 15
//	ellipsis = "…"
package config
