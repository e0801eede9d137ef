package main

import (
	"log"
	"os"
)

// @title Coach API
// @version 1.0
// @description Coach and client workspace: linking, workouts, meal plans, progress and messages.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := execute(rootCmd); err != nil {
		log.Printf("ERROR: %v", err)
		os.Exit(1)
	}
}
