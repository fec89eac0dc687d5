package main

// General API documentation for swaggo. Run `swag init -g cmd/llamactl/docs.go` to regenerate docs/.
//
// @title           llamactl API
// @version         1.0
// @description     HTTP API for supervising a local llama-server process.
//
// @contact.name   llamactl maintainers
// @contact.url    https://github.com/your-org/llamactl
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
