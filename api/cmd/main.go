package main

import (
	api "Inkwell/api"
)

// @title Inkwell API
// @version 1.0
// @description Blogging platform: posts, groups, comments and follows
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
