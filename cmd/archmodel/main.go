package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-archmodel/pkg/auth"
	"github.com/dd0wney/cluso-archmodel/pkg/config"
	"github.com/dd0wney/cluso-archmodel/pkg/framework"
	"github.com/dd0wney/cluso-archmodel/pkg/logging"
	"github.com/dd0wney/cluso-archmodel/pkg/model"
	"github.com/dd0wney/cluso-archmodel/pkg/validation"
)

type shell struct {
	fw      *framework.Framework
	actor   framework.Actor
	scanner *bufio.Scanner
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	author := flag.String("author", "", "Author recorded on mutations")
	role := flag.String("role", string(auth.RoleArchitect), "Role for permission checks")
	empty := flag.Bool("empty", false, "Start with an empty model instead of the reference framework")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *author == "" {
		*author = cfg.DefaultAuthor
	}

	fwCfg := framework.Config{
		Bounds:               cfg.Bounds(),
		AuditBufferSize:      cfg.AuditBufferSize,
		HistoryWarnThreshold: cfg.HistoryWarnThreshold,
		Logger:               logging.NewDefaultLogger(),
		Checker:              cfg.Checker(),
	}
	if !*empty {
		fwCfg.Seed = referenceSeed()
	}

	printBanner()

	fw := framework.New(fwCfg)
	state := fw.StateCopy()
	fmt.Printf("✅ Model loaded\n")
	fmt.Printf("   Nodes: %d\n", state.NodeCount())
	fmt.Printf("   Edges: %d\n", state.EdgeCount())
	fmt.Printf("   Actor: %s (%s)\n\n", *author, *role)

	sh := &shell{
		fw:      fw,
		actor:   framework.Actor{Author: *author, Role: auth.Role(*role)},
		scanner: bufio.NewScanner(os.Stdin),
	}

	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	sh.run()
}

func printBanner() {
	banner := `
╔══════════════════════════════════════════════╗
║                                              ║
║        ArchModel Interactive Shell           ║
║   Security Framework Graph Editor v3.0       ║
║                                              ║
╚══════════════════════════════════════════════╝
`
	fmt.Println(banner)
}

func (sh *shell) run() {
	for {
		fmt.Print("archmodel> ")

		if !sh.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(sh.scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			fmt.Println("👋 Goodbye!")
			break
		}

		sh.executeCommand(input)
		fmt.Println()
	}
}

func (sh *shell) executeCommand(input string) {
	parts := splitQuoted(input)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "help":
		sh.showHelp()

	case "stats", "status":
		sh.showStats()

	case "list", "ls":
		sh.listNodes(args)

	case "get":
		if len(args) < 1 {
			fmt.Println("Usage: get <name>")
			return
		}
		sh.getNode(args[0])

	case "children":
		if len(args) < 1 {
			fmt.Println("Usage: children <domain>")
			return
		}
		sh.showChildren(args[0])

	case "summary":
		sh.showSummaries()

	case "add":
		sh.addNodeInteractive()

	case "move":
		if len(args) < 3 {
			fmt.Println(`Usage: move <name> <x> <y>`)
			return
		}
		sh.moveNode(args[0], args[1], args[2])

	case "connect":
		if len(args) < 2 {
			fmt.Println(`Usage: connect <name-a> <name-b>`)
			return
		}
		sh.connect(args[0], args[1])

	case "disconnect":
		if len(args) < 2 {
			fmt.Println(`Usage: disconnect <name-a> <name-b>`)
			return
		}
		sh.disconnect(args[0], args[1])

	case "delete", "rm":
		if len(args) < 1 {
			fmt.Println("Usage: delete <name>")
			return
		}
		sh.deleteNode(args[0])

	case "versions":
		sh.listVersions()

	case "restore":
		if len(args) < 1 {
			fmt.Println("Usage: restore <version-id>")
			return
		}
		sh.restore(args[0])

	case "export":
		if len(args) < 1 {
			fmt.Println("Usage: export <json|csv|xml> [file]")
			return
		}
		sh.export(args)

	case "import":
		if len(args) < 1 {
			fmt.Println("Usage: import <file.json>")
			return
		}
		sh.importJSON(args[0])

	case "audit":
		sh.showAudit(args)

	case "clear":
		fmt.Print("\033[H\033[2J")

	default:
		fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n", command)
	}
}

func (sh *shell) showHelp() {
	help := `
📖 Available Commands:

🔍 Inspection:
  stats                      Show model statistics
  list [tier]                List nodes (domain, capability, process)
  get <name>                 Show one node in detail
  children <domain>          List a domain's capabilities
  summary                    Per-domain child and connection counts

🛠️  Editing:
  add                        Interactive node creation
  move <name> <x> <y>        Reposition a node
  connect <a> <b>            Add a connection
  disconnect <a> <b>         Remove a connection
  delete <name>              Delete a node (domains cascade)

🕘 History:
  versions                   List saved versions
  restore <version-id>       Restore a saved version
  audit [n]                  Show the last n audit events (default 10)

📦 Exchange:
  export <json|csv|xml> [f]  Export the model (to stdout or file f)
  import <file.json>         Replace the model from a JSON export

Quote names that contain spaces: get "Data Security"
`
	fmt.Println(help)
}

func (sh *shell) showStats() {
	state := sh.fw.StateCopy()
	fmt.Println("📊 Model Statistics:")
	fmt.Printf("   Main domains: %d\n", len(state.Domains))
	fmt.Printf("   Capabilities: %d\n", len(state.Capabilities))
	fmt.Printf("   Processes:    %d\n", len(state.Processes))
	fmt.Printf("   Connections:  %d\n", state.EdgeCount())
	fmt.Printf("   Versions:     %d\n", len(sh.fw.Versions()))
}

func (sh *shell) listNodes(args []string) {
	state := sh.fw.StateCopy()

	tiers := model.Tiers
	if len(args) > 0 {
		tier, ok := model.ParseTier(args[0])
		if !ok {
			fmt.Printf("❌ Unknown tier %q (domain, capability, process)\n", args[0])
			return
		}
		tiers = []model.Tier{tier}
	}

	for _, tier := range tiers {
		nodes := state.NodesByTier(tier)
		fmt.Printf("%s (%d):\n", tier, len(nodes))
		for _, n := range nodes {
			fmt.Printf("   %-36s (%.1f, %.1f)\n", n.Name, n.X, n.Y)
		}
	}
}

func (sh *shell) getNode(name string) {
	n, ok := sh.fw.Lookup(name)
	if !ok {
		fmt.Printf("❌ No node named %q\n", name)
		return
	}
	fmt.Printf("📌 %s\n", n.Name)
	fmt.Printf("   Tier:        %s\n", n.Tier)
	fmt.Printf("   Position:    (%.1f, %.1f)\n", n.X, n.Y)
	fmt.Printf("   Color:       %s\n", n.Color)
	if n.Parent != "" {
		fmt.Printf("   Parent:      %s\n", n.Parent)
	}
	if n.Description != "" {
		fmt.Printf("   Description: %s\n", n.Description)
	}
	if n.RiskScore != nil {
		fmt.Printf("   Risk score:  %.2f\n", *n.RiskScore)
	}
	if n.Compliance != "" {
		fmt.Printf("   Compliance:  %s\n", n.Compliance)
	}
	fmt.Printf("   Connections: %d\n", sh.fw.ConnectionCount(name))
}

func (sh *shell) showChildren(domain string) {
	children := sh.fw.ChildrenOf(domain)
	if len(children) == 0 {
		fmt.Printf("No capabilities under %q\n", domain)
		return
	}
	fmt.Printf("👥 Capabilities under %s:\n", domain)
	for _, c := range children {
		fmt.Printf("   %-36s (%.1f, %.1f)\n", c.Name, c.X, c.Y)
	}
}

func (sh *shell) showSummaries() {
	rows := sh.fw.DomainSummaries()
	fmt.Println("📈 Domain summary:")
	fmt.Printf("   %-32s %10s %12s\n", "Domain", "Children", "Connections")
	for _, row := range rows {
		fmt.Printf("   %-32s %10d %12d\n", row.Domain, row.Children, row.Connections)
	}
}

func (sh *shell) addNodeInteractive() {
	name := sh.prompt("Name: ")
	tier, ok := model.ParseTier(sh.prompt("Tier (domain/capability/process): "))
	if !ok {
		fmt.Println("❌ Tier must be one of: domain, capability, process")
		return
	}

	req := validation.NodeRequest{Name: name, Tier: tier}
	req.X = sh.promptFloat("X: ")
	req.Y = sh.promptFloat("Y: ")
	req.Color = sh.prompt("Color (blank for default): ")
	req.Description = sh.prompt("Description: ")
	if tier == model.TierCapability {
		req.Parent = sh.prompt("Parent domain: ")
	}

	n, err := sh.fw.AddNode(sh.actor, req)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("✅ Added %s %q at (%.1f, %.1f)\n", n.Tier, n.Name, n.X, n.Y)
}

func (sh *shell) moveNode(name, xs, ys string) {
	x, errX := strconv.ParseFloat(xs, 64)
	y, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil {
		fmt.Println("❌ Coordinates must be numbers")
		return
	}

	n, err := sh.fw.MoveNode(sh.actor, name, x, y)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("✅ Moved %q to (%.1f, %.1f)\n", n.Name, n.X, n.Y)
}

func (sh *shell) connect(a, b string) {
	if err := sh.fw.Connect(sh.actor, a, b); err != nil {
		printError(err)
		return
	}
	fmt.Printf("✅ Connected %q ↔ %q\n", a, b)
}

func (sh *shell) disconnect(a, b string) {
	if err := sh.fw.Disconnect(sh.actor, a, b); err != nil {
		printError(err)
		return
	}
	fmt.Printf("✅ Disconnected %q ↔ %q\n", a, b)
}

func (sh *shell) deleteNode(name string) {
	removed, err := sh.fw.DeleteNode(sh.actor, name)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("✅ Deleted %d node(s): %s\n", len(removed), strings.Join(removed, ", "))
}

func (sh *shell) listVersions() {
	entries := sh.fw.Versions()
	if len(entries) == 0 {
		fmt.Println("No versions saved yet")
		return
	}
	fmt.Printf("🕘 %d version(s), oldest first:\n", len(entries))
	for _, e := range entries {
		fmt.Printf("   %s  %s  by %-10s  %d nodes / %d edges\n",
			e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.Author, e.NodeCount, e.EdgeCount)
	}
}

func (sh *shell) restore(id string) {
	state, err := sh.fw.RestoreVersion(sh.actor, id)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("✅ Restored version %s (%d nodes, %d edges)\n", id, state.NodeCount(), state.EdgeCount())
}

func (sh *shell) export(args []string) {
	format := framework.ExportFormat(strings.ToLower(args[0]))
	out, err := sh.fw.Export(sh.actor, format)
	if err != nil {
		printError(err)
		return
	}

	if len(args) > 1 {
		if err := os.WriteFile(args[1], []byte(out), 0o644); err != nil {
			fmt.Printf("❌ Write failed: %v\n", err)
			return
		}
		fmt.Printf("✅ Exported %s to %s (%d bytes)\n", format, args[1], len(out))
		return
	}
	fmt.Println(out)
}

func (sh *shell) importJSON(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ Read failed: %v\n", err)
		return
	}
	if err := sh.fw.ImportJSON(sh.actor, data); err != nil {
		printError(err)
		return
	}
	state := sh.fw.StateCopy()
	fmt.Printf("✅ Imported %d nodes and %d edges from %s\n", state.NodeCount(), state.EdgeCount(), path)
}

func (sh *shell) showAudit(args []string) {
	n := 10
	if len(args) > 0 {
		if parsed, err := strconv.Atoi(args[0]); err == nil && parsed > 0 {
			n = parsed
		}
	}
	events := sh.fw.AuditTrail().Recent(n)
	if len(events) == 0 {
		fmt.Println("Audit trail is empty")
		return
	}
	fmt.Printf("🧾 Last %d audit event(s), newest first:\n", len(events))
	for _, e := range events {
		fmt.Printf("   %s\n", e.String())
	}
}

func (sh *shell) prompt(label string) string {
	fmt.Print(label)
	if !sh.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(sh.scanner.Text())
}

func (sh *shell) promptFloat(label string) float64 {
	v, _ := strconv.ParseFloat(sh.prompt(label), 64)
	return v
}

func printError(err error) {
	if ve, ok := framework.AsValidationError(err); ok {
		fmt.Printf("❌ Rejected with %d violation(s):\n", len(ve.Violations))
		for _, v := range ve.Violations {
			fmt.Printf("   • %s\n", v)
		}
		return
	}
	fmt.Printf("❌ %v\n", err)
}

// splitQuoted splits on whitespace while keeping double-quoted segments
// together, so multi-word node names survive: connect "Data Security" Auth
func splitQuoted(input string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t'):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
