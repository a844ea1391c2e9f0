package main

import "a0-cli/internal/logger"

var log = logger.Named("cli")
