package main

import "flag"

type rootArgs struct {
	cfgPath   string
	overrides []string
}

// parseRootArgs 解析子命令之前的全局参数，返回剩余参数交给子命令。
func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("a0-cli", flag.ContinueOnError)
	var cfgPath string
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.a0/config.toml)")
	fs.Var(&overrides, "set", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, nil, err
	}
	return rootArgs{cfgPath: cfgPath, overrides: overrides}, fs.Args(), nil
}
