package main

import _ "embed"

// embeddedConfig holds the YAML defaults embedded at build time.
// Packagers may overwrite default_config.yaml before compiling.
//
//go:embed default_config.yaml
var embeddedConfig []byte
