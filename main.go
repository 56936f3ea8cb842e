package main

import "github.com/podseek/search-api/cmd"

// @title           PodSeek Search API
// @version         1.0.0
// @description     Podcast and episode discovery with boolean query filtering
// @contact.name    API Support
// @contact.url     https://github.com/podseek/search-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
