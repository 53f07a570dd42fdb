package main

import (
	"github.com/dd0wney/cluso-archmodel/pkg/model"
)

// referenceSeed builds the SABSA-style reference framework the interactive
// shell starts from: five main domains, their capabilities, and the
// process catalogue underneath.
func referenceSeed() *model.FrameworkState {
	type nodeRow struct {
		name, parent, description string
		x, y                      float64
	}

	domains := []nodeRow{
		{name: "Data Security", x: 1, y: 5, description: "Protects data assets"},
		{name: "Identity & Access Management", x: 3, y: 5, description: "Controls access and identity"},
		{name: "Incident Handling & Response", x: 5, y: 5, description: "Manages security incidents"},
		{name: "Vulnerability Management", x: 7, y: 5, description: "Handles vulnerabilities"},
		{name: "Security Risk Management", x: 9, y: 5, description: "Manages security risks"},
	}

	capabilities := []nodeRow{
		{name: "Data Devaluation", parent: "Data Security", x: 0.5, y: 4, description: "Reduces data value exposure"},
		{name: "Data Integrity", parent: "Data Security", x: 1, y: 4, description: "Ensures data accuracy"},
		{name: "Data Confidentiality", parent: "Data Security", x: 1.5, y: 4, description: "Protects data privacy"},
		{name: "Security Testing", parent: "Data Security", x: 1, y: 3, description: "Validates security controls"},
		{name: "Authentication", parent: "Identity & Access Management", x: 2.5, y: 4, description: "Verifies user identity"},
		{name: "Authorization", parent: "Identity & Access Management", x: 3, y: 4, description: "Controls access permissions"},
		{name: "Access Recertification", parent: "Identity & Access Management", x: 3.5, y: 4, description: "Reviews access rights"},
		{name: "Vulnerability Identification", parent: "Identity & Access Management", x: 3, y: 3, description: "Detects access vulnerabilities"},
		{name: "Remediation Management", parent: "Incident Handling & Response", x: 4.5, y: 4, description: "Manages incident fixes"},
		{name: "Preparation", parent: "Incident Handling & Response", x: 5, y: 4, description: "Prepares for incidents"},
		{name: "Recovery", parent: "Incident Handling & Response", x: 5.5, y: 4, description: "Restores normal operations"},
		{name: "Incident Communication", parent: "Incident Handling & Response", x: 5, y: 3, description: "Communicates incident details"},
		{name: "Strategic Planning", parent: "Vulnerability Management", x: 6.5, y: 4, description: "Plans vulnerability strategy"},
		{name: "Change Management", parent: "Vulnerability Management", x: 7, y: 4, description: "Manages security changes"},
		{name: "Security Risk Integration", parent: "Vulnerability Management", x: 7.5, y: 4, description: "Integrates risk processes"},
		{name: "Governance & Reporting", parent: "Security Risk Management", x: 8.5, y: 4, description: "Manages governance"},
		{name: "Security Services Management", parent: "Security Risk Management", x: 9, y: 4, description: "Oversees security services"},
	}

	processes := []nodeRow{
		{name: "Encryption", x: 0.5, y: 2, description: "Secures data with encryption"},
		{name: "Masking", x: 1, y: 2, description: "Obfuscates sensitive data"},
		{name: "Anonymization", x: 1.5, y: 2, description: "Removes identifiable data"},
		{name: "Disclosure Authorization", x: 2, y: 2, description: "Controls data disclosure"},
		{name: "Validation", x: 2.5, y: 2, description: "Validates security controls"},
		{name: "Digital Signing", x: 3, y: 2, description: "Ensures data authenticity"},
		{name: "Multi-factor Authentication", x: 3.5, y: 2, description: "Enhances authentication"},
		{name: "Vulnerability Analysis", x: 4, y: 2, description: "Analyzes vulnerabilities"},
		{name: "Estimation of Extend", x: 4.5, y: 2, description: "Estimates vulnerability impact"},
		{name: "Recovery Analysis", x: 5, y: 2, description: "Plans recovery strategies"},
		{name: "Classification of Vulnerabilities", x: 5.5, y: 2, description: "Categorizes vulnerabilities"},
		{name: "Events History Repository", x: 6, y: 2, description: "Stores event history"},
		{name: "Wargaming", x: 6.5, y: 2, description: "Simulates attack scenarios"},
		{name: "Maturity Frameworks", x: 7, y: 2, description: "Assesses maturity levels"},
		{name: "Incident Response Planning", x: 7.5, y: 2, description: "Plans incident response"},
		{name: "Risk Appetite", x: 8, y: 2, description: "Defines risk tolerance"},
		{name: "Secure Repository", x: 0.5, y: 1, description: "Secures data storage"},
		{name: "Inventory of Basic Accounts", x: 1, y: 1, description: "Tracks account inventory"},
		{name: "Control of Privileged Access", x: 1.5, y: 1, description: "Manages privileged access"},
		{name: "Sandbox", x: 2, y: 1, description: "Isolates testing environment"},
		{name: "Training", x: 2.5, y: 1, description: "Educates staff"},
		{name: "Role/Rule Management", x: 3, y: 1, description: "Manages access roles"},
		{name: "Single Sign On", x: 3.5, y: 1, description: "Simplifies authentication"},
		{name: "Remote Access Authentication", x: 4, y: 1, description: "Secures remote access"},
		{name: "Monitoring and Qualification", x: 4.5, y: 1, description: "Monitors security metrics"},
		{name: "Business Alignment", x: 5, y: 1, description: "Aligns with business goals"},
		{name: "Incident Escalation", x: 5.5, y: 1, description: "Manages incident escalation"},
		{name: "Metrics, KPIs, KRIs and MI", x: 6.5, y: 1, description: "Tracks performance metrics"},
		{name: "Secure Transition", x: 7, y: 1, description: "Ensures secure transitions"},
		{name: "Strategy", x: 7.5, y: 1, description: "Defines security strategy"},
		{name: "Security Testing Framework", x: 0.5, y: 0, description: "Structures security tests"},
		{name: "Penetration Testing", x: 1, y: 0, description: "Simulates attacks"},
		{name: "Attestation", x: 1.5, y: 0, description: "Certifies compliance"},
		{name: "Automated Testing", x: 2, y: 0, description: "Automates security tests"},
		{name: "Recertification", x: 2.5, y: 0, description: "Renews certifications"},
		{name: "Authenticated Scanning", x: 3, y: 0, description: "Scans with authentication"},
		{name: "Red Team Testing", x: 3.5, y: 0, description: "Simulates advanced attacks"},
		{name: "Service Catalogue", x: 4, y: 0, description: "Lists security services"},
		{name: "Change Reconciliation", x: 4.5, y: 0, description: "Reconciles changes"},
		{name: "Case Management", x: 5, y: 0, description: "Manages security cases"},
	}

	edges := [][2]string{
		{"Data Security", "Data Devaluation"},
		{"Data Security", "Data Integrity"},
		{"Data Security", "Data Confidentiality"},
		{"Data Security", "Security Testing"},
		{"Identity & Access Management", "Authentication"},
		{"Identity & Access Management", "Authorization"},
		{"Identity & Access Management", "Access Recertification"},
		{"Identity & Access Management", "Vulnerability Identification"},
		{"Incident Handling & Response", "Remediation Management"},
		{"Incident Handling & Response", "Preparation"},
		{"Incident Handling & Response", "Recovery"},
		{"Incident Handling & Response", "Incident Communication"},
		{"Vulnerability Management", "Strategic Planning"},
		{"Vulnerability Management", "Change Management"},
		{"Vulnerability Management", "Security Risk Integration"},
		{"Security Risk Management", "Governance & Reporting"},
		{"Security Risk Management", "Security Services Management"},
		{"Data Integrity", "Encryption"},
		{"Data Confidentiality", "Masking"},
		{"Authentication", "Multi-factor Authentication"},
		{"Authorization", "Role/Rule Management"},
		{"Preparation", "Incident Response Planning"},
		{"Recovery", "Business Alignment"},
		{"Strategic Planning", "Wargaming"},
		{"Security Services Management", "Metrics, KPIs, KRIs and MI"},
	}

	state := model.NewFrameworkState()
	for _, row := range domains {
		state.Insert(&model.Node{
			Name: row.name, Tier: model.TierDomain,
			X: row.x, Y: row.y, Color: "#1e3a8a", Description: row.description,
		})
	}
	for _, row := range capabilities {
		state.Insert(&model.Node{
			Name: row.name, Tier: model.TierCapability,
			X: row.x, Y: row.y, Color: "#3b82f6", Parent: row.parent, Description: row.description,
		})
	}
	for _, row := range processes {
		state.Insert(&model.Node{
			Name: row.name, Tier: model.TierProcess,
			X: row.x, Y: row.y, Color: "#60a5fa", Description: row.description,
		})
	}
	for _, e := range edges {
		state.AddEdge(e[0], e[1])
	}
	return state
}
