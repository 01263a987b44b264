package main

// General API documentation for swaggo. Run `swag init -g cmd/evalmodels/docs.go -o docs` to regenerate.
//
// @title           evalmodels API
// @version         1.0
// @description     HTTP API for evaluation model registrations: listing, validation and prompt rendering.
//
// @contact.name   evalmodels maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
