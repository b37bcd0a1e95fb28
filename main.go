package main

import "github.com/soundmix/mixcheck-api/cmd"

// @title           Mixcheck API
// @version         1.0.0
// @description     REAPER project parsing and mix diagnostics API
// @contact.name    API Support
// @contact.url     https://github.com/soundmix/mixcheck-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
