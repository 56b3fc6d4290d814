package main

// @title IT Institute CMS API
// @version 1.0.0
// @description Content management backend for the institute website
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	Execute()
}
