package classify

import "os"

// Pattern is one space-hog rule: a directory or file name with the verdict
// and reason it carries.
type Pattern struct {
	// Name is the base name to match, case-insensitive.
	Name string
	// Safety is the verdict assigned on match.
	Safety Safety
	// Reason explains the verdict.
	Reason string
}

// RuleSet holds the classifier rule tables.
type RuleSet struct {
	// Patterns are the space-hog name rules, evaluated in order.
	Patterns []Pattern
	// ProtectedNames are path components that protect any path containing them.
	ProtectedNames []string
	// ProtectedPrefixes are absolute paths that protect themselves and all
	// descendants.
	ProtectedPrefixes []string
	// ProtectedExact are absolute paths that protect only themselves.
	ProtectedExact []string
}

// DefaultRules returns the built-in rule tables: well-known transient and
// cache directories, Windows system folder names, and unix/macOS system
// prefixes. The user home directory root, when resolvable, is protected as
// an exact match only so that its contents remain scannable.
func DefaultRules() RuleSet {
	rules := RuleSet{
		Patterns: []Pattern{
			{Name: "node_modules", Safety: Safe, Reason: "dependency cache directory (npm packages)"},
			{Name: ".npm", Safety: Safe, Reason: "npm cache"},
			{Name: ".yarn", Safety: Safe, Reason: "yarn cache"},
			{Name: ".venv", Safety: Safe, Reason: "python virtual environment"},
			{Name: "venv", Safety: Safe, Reason: "python virtual environment"},
			{Name: ".conda", Safety: Safe, Reason: "conda environments"},
			{Name: "__pycache__", Safety: Safe, Reason: "python bytecode cache"},
			{Name: ".pytest_cache", Safety: Safe, Reason: "pytest cache"},
			{Name: ".cache", Safety: Safe, Reason: "cache files"},
			{Name: ".nuget", Safety: Safe, Reason: "nuget package cache"},
			{Name: ".gradle", Safety: Safe, Reason: "gradle build cache"},
			{Name: ".m2", Safety: Safe, Reason: "maven repository cache"},
			{Name: "temp", Safety: Safe, Reason: "temporary files"},
			{Name: "tmp", Safety: Safe, Reason: "temporary files"},
			{Name: "build", Safety: Safe, Reason: "build artifacts"},
			{Name: "dist", Safety: Safe, Reason: "distribution artifacts"},
			{Name: "target", Safety: Safe, Reason: "build artifacts (cargo/maven)"},
			{Name: "logs", Safety: Safe, Reason: "log files"},
			{Name: ".git", Safety: Unsafe, Reason: "version-control history; deleting loses repository history"},
			{Name: "AppData", Safety: Unsafe, Reason: "application data; may contain important settings"},
		},
		ProtectedNames: []string{
			"Windows",
			"Program Files",
			"Program Files (x86)",
			"ProgramData",
			"System32",
			"System Volume Information",
			"$Recycle.Bin",
			"$WINDOWS.~BT",
			"pagefile.sys",
			"hiberfil.sys",
			"swapfile.sys",
			"bootmgr",
		},
		ProtectedPrefixes: []string{
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			"/System",
			"/Library",
			"/Applications",
		},
	}

	if home, err := os.UserHomeDir(); err == nil {
		rules.ProtectedExact = append(rules.ProtectedExact, home)
	}

	return rules
}
