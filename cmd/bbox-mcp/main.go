package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/bbox-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	server.Version = Version

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			printVersion()
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "tools":
			printTools()
			return
		case "run":
			os.Exit(runTool(os.Args[2:]))
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q, see --help\n", os.Args[1])
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("BBOX MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	fmt.Println(titleStyle.Render("bbox-tools-mcp " + Version))
	fmt.Println(dimStyle.Render("  Build time: " + BuildTime))
	fmt.Println(dimStyle.Render("  Git commit: " + GitCommit))
}

func printHelp() {
	usage := strings.Join([]string{
		titleStyle.Render("bbox-tools-mcp") + dimStyle.Render(" - MCP server for bounding box tools"),
		"",
		"Usage:",
		"  bbox-tools-mcp                      Serve MCP over stdin/stdout",
		"  bbox-tools-mcp tools                List registered tools",
		"  bbox-tools-mcp run <tool> [json]    Run one tool and print its result",
		"",
		"Options:",
		"  --version, -v    Print version information",
		"  --help, -h       Print this help message",
		"",
		"Environment variables:",
		"  BBOX_MCP_LOG_LEVEL=debug        Enable debug logging",
		"  BBOX_MCP_RESAMPLER=imaging|bild Default resampling backend",
		"  BBOX_MCP_FILTER=<name>          Default resampling filter (catmullrom)",
	}, "\n")
	fmt.Println(boxStyle.Render(usage))
}

func printTools() {
	rows := []string{titleStyle.Render(server.Category)}
	for _, n := range server.Nodes() {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(n.Name),
			labelStyle.Render(n.DisplayName),
		))
	}
	fmt.Println(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

// runTool executes a single tool outside MCP and returns the exit code.
func runTool(args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: bbox-tools-mcp run <tool> [json-arguments]")
		return 2
	}

	var raw json.RawMessage
	if len(args) == 2 {
		raw = json.RawMessage(args[1])
	}

	result, err := server.New().Call(args[0], raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
		return 1
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}
