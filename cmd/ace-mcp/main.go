// Command ace-mcp exposes the built-in ACE skills as an MCP server over
// stdio, so MCP clients can discover and call them directly.
//
// Usage:
//
//	go run ./cmd/ace-mcp
//
// Configuration for an MCP client such as Claude Desktop:
//
//	{
//	    "mcpServers": {
//	        "ace-skills": {
//	            "command": "go",
//	            "args": ["run", "./cmd/ace-mcp"],
//	            "cwd": "/path/to/ace"
//	        }
//	    }
//	}
//
// Set WEATHER_API_KEY (directly or via .env) to enable the weather
// skill.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/illyshaieb/ace/action"
	"github.com/illyshaieb/ace/mcp"
	"github.com/illyshaieb/ace/skill"
)

func main() {
	godotenv.Load()

	registry := action.NewRegistry()
	skills := skill.New(skill.WithWeatherAPIKey(os.Getenv("WEATHER_API_KEY")))
	if err := skills.RegisterAll(registry); err != nil {
		log.Fatal(err)
	}

	if err := mcp.ServeStdio(registry,
		mcp.WithName("ace-skills"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}
