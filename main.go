//go:generate swag init -g main.go -o api --outputTypes go

//	@title			Bonsai Account Security API
//	@version		1.0
//	@description	OAuth sign-in, cookie sessions, CSRF protection and account status administration

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	SessionAuth
//	@in							cookie
//	@name						__Host-bonsai_session
//	@description				Session cookie (bonsai_session when cookies are not Secure)

//	@securityDefinitions.apikey	CSRFToken
//	@in							header
//	@name						X-CSRF-Token
//	@description				Must echo the bonsai CSRF cookie on state-changing requests

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/pawafulu7/bonsai-cho-sub000/api" // swagger docs
	"github.com/pawafulu7/bonsai-cho-sub000/internal/bootstrap"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/config"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/version"
)

func main() {
	// Define flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = printUsage
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	// Check if command is provided
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Handle subcommands
	switch args[0] {
	case "server":
		if err := bootstrap.Run(config.Load()); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case "cleanup":
		if err := bootstrap.RunCleanup(config.Load()); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Println("Bonsai session and account security service")
	fmt.Println("\nCommands:")
	fmt.Println("  server    Start the HTTP server")
	fmt.Println("  cleanup   Delete expired sessions, sign-in states and old audit logs, then exit")
	fmt.Println("\nOptions:")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  -h, --help       Show this help message")
}
